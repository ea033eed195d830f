package license

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultCatalog(t *testing.T) Catalog {
	t.Helper()
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	require.NotEmpty(t, cat)
	return cat
}

func corpusText(t *testing.T, id string) string {
	t.Helper()
	for _, e := range defaultCatalog(t) {
		if e.ID == id {
			return e.Text
		}
	}
	t.Fatalf("corpus has no entry %q", id)
	return ""
}

func TestNormalize(t *testing.T) {
	in := "  MIT License\n\nCopyright (c) 2020 Jane Doe\n\n Permission   is\thereby\n granted. "
	assert.Equal(t, "MIT License Permission is hereby granted.", Normalize(in))

	assert.Equal(t, "kept line", Normalize("(C) 2019 Someone\nkept line\n"))
	assert.Equal(t, "", Normalize("   \n\t\n"))
}

func TestIdentifyExactMatch(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)

	// An added copyright notice normalizes away, so this is still an
	// exact match.
	text := "Copyright 2020 Jane Doe\n" + corpusText(t, "MIT")
	id, ok := m.Identify(text)
	require.True(t, ok)
	assert.Equal(t, "MIT", id)
}

func TestIdentifyNearMatch(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)
	text := corpusText(t, "BSD-3-Clause")

	// Mutate roughly 1% of the characters: well under the 5% cutoff.
	mutated := mutate(t, text, 0.01)
	id, ok := m.Identify(mutated)
	require.True(t, ok)
	assert.Equal(t, "BSD-3-Clause", id)

	// Past the cutoff nothing qualifies.
	_, ok = m.Identify(mutate(t, text, 0.30))
	assert.False(t, ok)
}

func TestIdentifyEmptyText(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)
	_, ok := m.Identify("")
	assert.False(t, ok)
	_, ok = m.Identify("Copyright 2024 Nobody\n")
	assert.False(t, ok)
}

func TestIdentifyNoMatch(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)
	_, ok := m.Identify("This program is licensed under the Do What You Want License.")
	assert.False(t, ok)
}

func TestLengthPruningSkipsDistance(t *testing.T) {
	calls := 0
	counting := func(a, b string, cutoff int) int {
		calls++
		return BoundedLevenshtein(a, b, cutoff)
	}
	m := NewMatcher(defaultCatalog(t), WithDistance(counting))

	// Far shorter than every catalog entry: every comparison is pruned
	// on length alone and the distance backend is never invoked.
	_, ok := m.Identify("short text")
	assert.False(t, ok)
	assert.Zero(t, calls)
}

func TestCatalogOrderBreaksTies(t *testing.T) {
	cat := Catalog{
		{ID: "FIRST", Text: "alpha beta gamma delta epsilon zeta eta theta"},
		{ID: "SECOND", Text: "alpha beta gamma delta epsilon zeta eta theta"},
	}
	m := NewMatcher(cat)
	id, ok := m.Identify("alpha beta gamma delta epsilon zeta eta theta")
	require.True(t, ok)
	assert.Equal(t, "FIRST", id)
}

func TestIdentifyFile(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "LICENSE")
	require.NoError(t, os.WriteFile(path, []byte(corpusText(t, "ISC")), 0o644))

	id, ok, err := m.IdentifyFile(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ISC", id)

	_, _, err = m.IdentifyFile(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIdentifyFileWithBOM(t *testing.T) {
	m, err := DefaultMatcher()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "LICENSE")
	bom := []byte{0xEF, 0xBB, 0xBF}
	require.NoError(t, os.WriteFile(path, append(bom, corpusText(t, "MIT")...), 0o644))

	id, ok, err := m.IdentifyFile(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "MIT", id)
}

// mutate replaces the given fraction of characters with 'Q', spread
// deterministically through the text.
func mutate(t *testing.T, text string, fraction float64) string {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	runes := []rune(text)
	n := int(float64(len(runes)) * fraction)
	for i := 0; i < n; i++ {
		pos := rng.Intn(len(runes))
		if runes[pos] == ' ' || runes[pos] == '\n' {
			continue
		}
		runes[pos] = 'Q'
	}
	return string(runes)
}

func TestMutateHelperChangesText(t *testing.T) {
	text := strings.Repeat("abcdefgh ", 100)
	assert.NotEqual(t, text, mutate(t, text, 0.05))
}
