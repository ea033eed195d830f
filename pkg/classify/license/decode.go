package license

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// decodeText converts raw file bytes to a UTF-8 string. The encoding is
// sniffed from the content; when detection is uncertain the bytes are
// assumed to already be UTF-8.
func decodeText(raw []byte) (string, error) {
	enc, name, certain := charset.DetermineEncoding(raw, "")
	if !certain || enc == nil {
		return string(raw), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), enc.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(decoded), nil
}
