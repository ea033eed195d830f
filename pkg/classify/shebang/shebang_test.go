package shebang

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "#!/usr/bin/python3\n", []string{"/usr/bin/python3"}},
		{"with argument", "#!/bin/sh -e\nrest\n", []string{"/bin/sh", "-e"}},
		{"env indirection", "#!/usr/bin/env python3\n", []string{"python3"}},
		{"env with -S", "#!/usr/bin/env -S python3 -u\n", []string{"python3", "-u"}},
		{"env alone", "#!/usr/bin/env\n", nil},
		{"env -S alone", "#!/usr/bin/env -S\n", nil},
		{"quoted path", `#!"/opt/my tools/python"` + "\n", []string{"/opt/my tools/python"}},
		{"unbalanced quote falls back to fields", "#!/bin/sh \"unterminated\n", []string{"/bin/sh", "\"unterminated"}},
		{"no marker", "echo hi\n", nil},
		{"marker only", "#!", nil},
		{"empty line", "#!\n", nil},
		{"empty input", "", nil},
		{"no trailing newline", "#!/bin/bash", []string{"/bin/bash"}},
		{"nul byte rejected", "#!/bin/sh\x00 -e\n", nil},
		{"c0 control rejected", "#!/bin/sh\x01\n", nil},
		{"non-ascii rejected", "#!/bin/shé\n", nil},
		{"invalid utf-8 rejected", "#!/bin/sh\xff\xfe\n", nil},
		{"whitespace runs", "#! \t /bin/sh  \t -x \n", []string{"/bin/sh", "-x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(strings.NewReader(tt.in))
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseNixShell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			"interpreter from -i flag",
			"#!/usr/bin/env nix-shell\n#!nix-shell -i python3 -p python3\n",
			[]string{"python3"},
		},
		{
			"last -i wins across lines",
			"#!/usr/bin/env nix-shell\n#!nix-shell -i bash -p bash\n#!nix-shell -i python3\n",
			[]string{"python3"},
		},
		{
			"no continuation lines",
			"#!/usr/bin/env nix-shell\nimport os\n",
			[]string{"nix-shell"},
		},
		{
			"continuation without -i",
			"#!/usr/bin/env nix-shell\n#!nix-shell -p python3\n",
			[]string{"nix-shell"},
		},
		{
			"trailing -i with no argument ignored",
			"#!/usr/bin/env nix-shell\n#!nix-shell -p python3 -i\n",
			[]string{"nix-shell"},
		},
		{
			"undecodable continuation stops the scan",
			"#!/usr/bin/env nix-shell\n#!nix-shell \xff -i python3\n",
			[]string{"nix-shell"},
		},
		{
			"direct nix-shell without env is not followed",
			"#!/usr/bin/nix-shell\n#!nix-shell -i python3\n",
			[]string{"/usr/bin/nix-shell"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(strings.NewReader(tt.in)))
		})
	}
}

func TestParseNixShellLineCap(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("#!/usr/bin/env nix-shell\n")
	for i := 0; i < 100; i++ {
		sb.WriteString("#!nix-shell -p python3\n")
	}
	sb.WriteString("#!nix-shell -i python3\n")

	// The -i line sits past the cap, so the command stays unresolved.
	got := Parser{MaxNixShellLines: 8}.Parse(strings.NewReader(sb.String()))
	assert.Equal(t, []string{"nix-shell"}, got)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, []string{"python3.9.1", "python3.9", "python3"},
		Resolve([]string{"/usr/bin/python3.9.1", "-u"}))
	assert.Equal(t, []string{"bash"}, Resolve([]string{"bash"}))
	assert.Nil(t, Resolve(nil))
}

func TestParseFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bits are not meaningful on windows")
	}
	dir := t.TempDir()

	script := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(script, []byte("#!/usr/bin/env python3\n"), 0o755))
	cmd, err := ParseFile(script)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3"}, cmd)

	// Not executable: the shebang is present but ignored.
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("#!/usr/bin/env python3\n"), 0o644))
	cmd, err = ParseFile(plain)
	require.NoError(t, err)
	assert.Empty(t, cmd)
}

func TestParseFileNotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}
