// Package shebang extracts the interpreter command from the `#!` line of
// a script. Malformed input (missing marker, bad UTF-8, non-printable
// characters) is treated as the absence of a shebang, never as an error.
package shebang

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/google/shlex"

	"github.com/starthal/identify/pkg/classify/content"
	"github.com/starthal/identify/pkg/util"
)

// ErrNotFound indicates the target path has no directory entry. The check
// does not follow a trailing symlink.
var ErrNotFound = errors.New("path does not exist")

// DefaultMaxNixShellLines caps how many `#!nix-shell` continuation lines
// a single parse will consume. The format itself has no bound; the cap
// keeps a crafted file from turning the parse into an unbounded read.
const DefaultMaxNixShellLines = 16

// Parser parses shebang lines. The zero value is ready to use.
type Parser struct {
	// MaxNixShellLines overrides DefaultMaxNixShellLines when positive.
	MaxNixShellLines int
}

// Parse reads the shebang command from r, which must be positioned at the
// start of the file. It returns the ordered command tokens, or an empty
// slice when no well-formed shebang is present. Parse never fails: every
// malformed input maps to the empty command.
func Parse(r io.Reader) []string {
	return Parser{}.Parse(r)
}

// Parse implements the lexical state machine: marker check, UTF-8 decode,
// printable-ASCII validation, shell-style tokenization with a
// whitespace-split fallback, /usr/bin/env (and env -S) stripping, and the
// multi-line nix-shell continuation scan.
func (p Parser) Parse(r io.Reader) []string {
	br := bufio.NewReader(r)
	if !readMarker(br) {
		return nil
	}
	line, ok := readShebangLine(br)
	if !ok {
		return nil
	}

	cmd := splitLine(strings.TrimSpace(line))
	if len(cmd) > 0 && cmd[0] == "/usr/bin/env" {
		if len(cmd) >= 2 && cmd[1] == "-S" {
			cmd = cmd[2:]
		} else {
			cmd = cmd[1:]
		}
		if len(cmd) == 1 && cmd[0] == "nix-shell" {
			return p.parseNixShell(br, cmd)
		}
	}
	return cmd
}

// parseNixShell follows `#!nix-shell ... -i interpreter ...` continuation
// lines, replacing the command with the -i argument each time one appears.
// The scan stops at the first line that does not start with the marker, on
// any decode failure, or at the line cap.
func (p Parser) parseNixShell(br *bufio.Reader, cmd []string) []string {
	maxLines := p.MaxNixShellLines
	if maxLines <= 0 {
		maxLines = DefaultMaxNixShellLines
	}
	for i := 0; i < maxLines && readMarker(br); i++ {
		line, ok := readShebangLine(br)
		if !ok {
			return cmd
		}
		tokens := splitLine(strings.TrimSpace(line))
		for j, token := range tokens {
			if token == "-i" && j+1 < len(tokens) {
				cmd = []string{tokens[j+1]}
			}
		}
	}
	return cmd
}

// readMarker consumes and checks the two-byte `#!` marker.
func readMarker(br *bufio.Reader) bool {
	var marker [2]byte
	if _, err := io.ReadFull(br, marker[:]); err != nil {
		return false
	}
	return marker[0] == '#' && marker[1] == '!'
}

// readShebangLine reads the remainder of the current line and validates
// it: the bytes must decode as UTF-8 and every rune must be printable
// ASCII or one of BEL BS TAB LF VT FF CR ESC. Anything else means "no
// shebang".
func readShebangLine(br *bufio.Reader) (string, bool) {
	raw, err := br.ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false
	}
	if !utf8.Valid(raw) {
		return "", false
	}
	for _, r := range string(raw) {
		if !printableRune(r) {
			return "", false
		}
	}
	return string(raw), true
}

// printableRune is the content package's text byte set restricted to
// ASCII: runes with the high bit set reject the line even though they
// would pass the content sniff.
func printableRune(r rune) bool {
	return r < utf8.RuneSelf && content.IsTextByte(byte(r))
}

// splitLine tokenizes with shell quoting rules first; shebangs are not
// supposed to be quoted, but tools such as setuptools write them that
// way. If the lexer rejects the input (unbalanced quotes), fall back to
// splitting on whitespace runs.
func splitLine(line string) []string {
	tokens, err := shlex.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	return tokens
}

// Resolve expands the first command token into interpreter-name lookup
// candidates: the last path segment, then each trailing dot-suffix
// stripped in turn. `/usr/bin/python3.9` yields "python3.9", "python3".
// An empty command yields nil.
func Resolve(cmd []string) []string {
	if len(cmd) == 0 {
		return nil
	}
	return util.TrimSuffixCandidates(util.Basename(cmd[0]))
}

// ParseFile parses the shebang of the file at path. It fails with
// ErrNotFound if the path has no directory entry (the check does not
// follow a trailing symlink) and returns the empty command when the file
// is not executable by the current user. An EINVAL from opening or
// reading a special file is swallowed and treated as "no shebang"; any
// other I/O failure is propagated.
func (p Parser) ParseFile(path string) ([]string, error) {
	if _, err := os.Lstat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if !util.Executable(path) {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, syscall.EINVAL) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	return p.Parse(f), nil
}

// ParseFile is the package-level convenience form of Parser.ParseFile.
func ParseFile(path string) ([]string, error) {
	return Parser{}.ParseFile(path)
}
