// Package license identifies which open-source license a block of text
// represents. Candidate text is normalized (copyright notices stripped,
// whitespace collapsed) and compared against a catalog of canonical
// texts: an exact match wins immediately, otherwise a bounded edit
// distance search with a 5% cutoff picks the closest entry.
package license

import (
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// ErrNotFound indicates the target path has no directory entry.
var ErrNotFound = errors.New("path does not exist")

var (
	copyrightRe  = regexp.MustCompile(`(?im)^\s*(Copyright|\(C\)) .*$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips line-anchored copyright notices, collapses every
// whitespace run to a single space, and trims the ends. All comparisons
// operate on normalized text.
func Normalize(s string) string {
	s = copyrightRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Entry pairs an SPDX identifier with the canonical license text.
type Entry struct {
	ID   string
	Text string
}

// Catalog is an ordered list of license entries. Order is significant:
// the first qualifying exact match wins, and ties on minimum edit
// distance resolve to the earlier entry.
type Catalog []Entry

// DistanceFunc computes the edit distance between two strings, allowed
// to abort early: any return value greater than or equal to cutoff means
// "exceeded", and only values below cutoff need to be exact.
type DistanceFunc func(a, b string, cutoff int) int

// Matcher searches a catalog for the license a text represents.
// Construct with NewMatcher; a Matcher is immutable and safe for
// concurrent use.
type Matcher struct {
	ids      []string
	norms    []string
	distance DistanceFunc
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDistance swaps the edit distance backend. The default is the
// bounded Levenshtein implementation in this package.
func WithDistance(fn DistanceFunc) Option {
	return func(m *Matcher) { m.distance = fn }
}

// NewMatcher builds a matcher over cat, normalizing every catalog text
// up front.
func NewMatcher(cat Catalog, opts ...Option) *Matcher {
	m := &Matcher{
		ids:      make([]string, len(cat)),
		norms:    make([]string, len(cat)),
		distance: BoundedLevenshtein,
	}
	for i, e := range cat {
		m.ids[i] = e.ID
		m.norms[i] = Normalize(e.Text)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Identify returns the SPDX identifier of the catalog entry matching
// text, and whether one was found. "No match" is an expected outcome,
// not an error.
func (m *Matcher) Identify(text string) (string, bool) {
	norm := Normalize(text)
	cutoff := int(math.Ceil(0.05 * float64(len(norm))))

	minDist := math.MaxInt
	minID := ""

	for i, catalogNorm := range m.norms {
		if norm == catalogNorm {
			return m.ids[i], true
		}

		// A length gap beyond the cutoff means the edit distance cannot
		// qualify either; skip the expensive computation.
		if norm != "" {
			diff := len(norm) - len(catalogNorm)
			if diff < 0 {
				diff = -diff
			}
			if float64(diff)/float64(len(norm)) > 0.05 {
				continue
			}
		}

		if d := m.distance(norm, catalogNorm, cutoff); d < cutoff && d < minDist {
			minDist = d
			minID = m.ids[i]
		}
	}

	if norm != "" && minDist < cutoff {
		return minID, true
	}
	return "", false
}

// IdentifyFile reads the file at path as text and identifies its
// license. Files in legacy encodings or carrying a BOM are transcoded to
// UTF-8 before normalization. It fails with ErrNotFound when the path
// has no directory entry.
func (m *Matcher) IdentifyFile(path string) (string, bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return "", false, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false, err
	}
	text, err := decodeText(raw)
	if err != nil {
		return "", false, err
	}
	id, ok := m.Identify(text)
	return id, ok, nil
}
