package classify

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/starthal/identify/pkg/classify/catalog"
	"github.com/starthal/identify/pkg/classify/content"
	"github.com/starthal/identify/pkg/classify/shebang"
	"github.com/starthal/identify/pkg/util"
)

// Classifier maps filesystem entries and name fragments to tag sets.
// It is safe for concurrent use.
type Classifier struct {
	catalog *catalog.Catalog
	sniffer ContentSniffer
	shebang ShebangReader
	logger  *slog.Logger
}

// fileSniffer is the default ContentSniffer backed by the content package.
type fileSniffer struct{}

func (fileSniffer) FileIsText(path string) (bool, error) {
	return content.FileIsText(path)
}

// New builds a Classifier from the given options. Logger is required;
// Catalog, Sniffer, and Shebang fall back to the package defaults.
func New(opts Options) (*Classifier, error) {
	if opts.Logger == nil {
		return nil, fmt.Errorf("%w: Logger implementation (slog.Handler) cannot be nil", ErrConfigValidation)
	}
	logger := slog.New(opts.Logger).With(slog.String("component", "classifier"))

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
		logger.Debug("Catalog not provided, using vendored defaults")
	}

	var sniffer ContentSniffer = opts.Sniffer
	if sniffer == nil {
		sniffer = fileSniffer{}
	}

	var reader ShebangReader = opts.Shebang
	if reader == nil {
		reader = &shebang.Parser{MaxNixShellLines: opts.MaxNixShellLines}
	}

	return &Classifier{
		catalog: cat,
		sniffer: sniffer,
		shebang: reader,
		logger:  logger,
	}, nil
}

// TagsFromPath classifies the filesystem entry at path. The path itself
// is inspected with Lstat, so a symlink is classified as a symlink rather
// than as its target. Regular files additionally get a mode tag, name and
// extension tags from the catalog, interpreter tags from the shebang line
// when the file is executable and its name matched nothing, and finally a
// text or binary tag if no catalog entry already decided the encoding.
func (c *Classifier) TagsFromPath(path string) (TagSet, error) {
	// Any lstat failure means the entry is absent for classification
	// purposes (lexists semantics), not just ENOENT: a path routing
	// through a regular file fails with ENOTDIR, for example.
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	mode := info.Mode()
	switch {
	case mode.IsDir():
		return NewTagSet(TagDirectory), nil
	case mode&fs.ModeSymlink != 0:
		return NewTagSet(TagSymlink), nil
	case mode&fs.ModeSocket != 0:
		return NewTagSet(TagSocket), nil
	}

	tags := NewTagSet(TagFile)
	executable := util.Executable(path)
	if executable {
		tags.Add(TagExecutable)
	} else {
		tags.Add(TagNonExecutable)
	}

	named := c.TagsFromFilename(util.Basename(path))
	if len(named) > 0 {
		tags.Union(named)
	} else if executable {
		cmd, err := c.shebang.ParseFile(path)
		if err != nil {
			return nil, err
		}
		if len(cmd) > 0 {
			c.logger.Debug("Classifying by shebang", slog.String("path", path), slog.String("interpreter", cmd[0]))
			tags.Union(c.TagsFromInterpreter(cmd[0]))
		}
	}

	if !tags.Intersects(EncodingTags) {
		isText, err := c.sniffer.FileIsText(path)
		if err != nil {
			return nil, err
		}
		if isText {
			tags.Add(TagText)
		} else {
			tags.Add(TagBinary)
		}
	}

	if err := Validate(tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagsFromFilename classifies a bare filename without touching the
// filesystem. Exact and dot-segment name matches are consulted first,
// then the lowercased final extension. The result may be empty and never
// contains type or mode tags.
func (c *Classifier) TagsFromFilename(name string) TagSet {
	base := util.Basename(name)
	tags := NewTagSet()

	candidates := append([]string{base}, strings.Split(base, ".")...)
	for _, cand := range candidates {
		if t, ok := c.catalog.Names[cand]; ok {
			tags.AddStrings(t)
			break
		}
	}

	if ext, ok := util.SplitExtension(base); ok {
		if t, ok := c.catalog.Extensions[ext]; ok {
			tags.AddStrings(t)
		} else if t, ok := c.catalog.ExtensionsNeedBinaryCheck[ext]; ok {
			tags.AddStrings(t)
		}
	}
	return tags
}

// TagsFromInterpreter classifies an interpreter command. The directory
// part is discarded and version suffixes are stripped one dotted segment
// at a time until a catalog entry matches ("python3.9" falls back to
// "python3"). The result may be empty.
func (c *Classifier) TagsFromInterpreter(interpreter string) TagSet {
	for _, cand := range util.TrimSuffixCandidates(util.Basename(interpreter)) {
		if t, ok := c.catalog.Interpreters[cand]; ok {
			tags := NewTagSet()
			tags.AddStrings(t)
			return tags
		}
	}
	return NewTagSet()
}

// AllTags returns every tag the classifier can emit, sorted: the closed
// type, mode, and encoding facets plus all catalog tags.
func (c *Classifier) AllTags() []string {
	seen := NewTagSet()
	seen.Union(TypeTags)
	seen.Union(ModeTags)
	seen.Union(EncodingTags)
	seen.AddStrings(c.catalog.Tags())
	return seen.Slice()
}

// Catalog returns the catalog backing this classifier. Callers must not
// mutate it.
func (c *Classifier) Catalog() *catalog.Catalog {
	return c.catalog
}
