package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOverride(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeOverride(t, "override.yaml", `
extensions:
  frobnicate:
    - text
    - frob
names:
  Frobfile:
    - text
    - frob
`)
	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "frob"}, o.Extensions["frobnicate"])
	assert.Equal(t, []string{"text", "frob"}, o.Names["Frobfile"])
	assert.Empty(t, o.Interpreters)
}

func TestLoadFileTOML(t *testing.T) {
	path := writeOverride(t, "override.toml", `
[interpreters]
frob = ["frob"]
`)
	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"frob"}, o.Interpreters["frob"])
}

func TestLoadFileJSON(t *testing.T) {
	path := writeOverride(t, "override.json", `{"extensions": {"x": ["text", "x"]}}`)
	o, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"text", "x"}, o.Extensions["x"])
}

func TestLoadFileRejectsUnknownKeys(t *testing.T) {
	path := writeOverride(t, "override.yaml", `
extenshuns:
  py: [text]
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFileRejectsWrongShape(t *testing.T) {
	path := writeOverride(t, "override.yaml", `
extensions:
  py: "not-a-list"
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadFileRejectsUnsupportedFormat(t *testing.T) {
	path := writeOverride(t, "override.ini", "[extensions]\n")
	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFileParseError(t *testing.T) {
	path := writeOverride(t, "override.yaml", "extensions: [::::")
	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrInvalid)
}
