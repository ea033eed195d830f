package license

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// The vendored corpus: canonical license texts from choosealicense.com,
// zstd-compressed, one file per SPDX identifier.
//
//go:embed data/*.txt.zst
var corpusFS embed.FS

var (
	corpusOnce sync.Once
	corpusCat  Catalog
	corpusErr  error
)

// DefaultCatalog decompresses and returns the embedded license corpus,
// ordered by SPDX identifier. The result is built once and shared;
// callers must treat it as read-only.
func DefaultCatalog() (Catalog, error) {
	corpusOnce.Do(func() {
		corpusCat, corpusErr = loadCorpus()
	})
	return corpusCat, corpusErr
}

// DefaultMatcher builds a matcher over the embedded corpus.
func DefaultMatcher() (*Matcher, error) {
	cat, err := DefaultCatalog()
	if err != nil {
		return nil, err
	}
	return NewMatcher(cat), nil
}

func loadCorpus() (Catalog, error) {
	entries, err := fs.Glob(corpusFS, "data/*.txt.zst")
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	cat := make(Catalog, 0, len(entries))
	for _, name := range entries {
		raw, err := corpusFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		text, err := dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", name, err)
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, "data/"), ".txt.zst")
		cat = append(cat, Entry{ID: id, Text: string(text)})
	}
	return cat, nil
}
