// Package content decides whether a chunk of raw bytes looks like text.
// The heuristic is byte-set membership over the first kilobyte, roughly
// following libmagic's text/binary detection: every byte must be a common
// control code, printable ASCII, or have the high bit set.
package content

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// SniffLen is the number of leading bytes inspected by IsText.
const SniffLen = 1024

// ErrNotFound indicates the target path has no directory entry. The check
// does not follow a trailing symlink.
var ErrNotFound = errors.New("path does not exist")

// textBytes marks each byte value allowed in a text chunk: BEL, BS, TAB,
// LF, VT, FF, CR, ESC, printable ASCII, and everything with the high bit
// set (so UTF-8 continuation bytes and legacy 8-bit encodings pass).
var textBytes = buildTextTable()

func buildTextTable() (t [256]bool) {
	for _, b := range []byte{7, 8, 9, 10, 11, 12, 13, 27} {
		t[b] = true
	}
	for b := 0x20; b < 0x7F; b++ {
		t[b] = true
	}
	for b := 0x80; b <= 0xFF; b++ {
		t[b] = true
	}
	return t
}

// IsTextByte reports whether b belongs to the text byte set. The shebang
// parser shares this table, restricted to ASCII, for its printable check.
func IsTextByte(b byte) bool {
	return textBytes[b]
}

// IsText reads up to SniffLen bytes from r and reports whether every byte
// read belongs to the text byte set. An empty stream counts as text.
func IsText(r io.Reader) (bool, error) {
	buf := make([]byte, SniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return false, err
	}
	for _, b := range buf[:n] {
		if !textBytes[b] {
			return false, nil
		}
	}
	return true, nil
}

// FileIsText opens path and applies IsText to its leading bytes. It fails
// with ErrNotFound when the path has no directory entry; the existence
// check uses lstat so a dangling symlink is still "found".
func FileIsText(path string) (bool, error) {
	if _, err := os.Lstat(path); err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return IsText(f)
}
