// Package catalog provides the lookup tables that drive filename,
// extension, and interpreter classification: immutable mappings from an
// extension, a basename, or an interpreter name to the list of tags it
// implies. The vendored defaults cover common development file types;
// override documents can layer additional mappings on top.
package catalog

import (
	"errors"
	"sort"
)

// Exported error variables for catalog loading. Callers should test against
// them with errors.Is.
var (
	// ErrInvalid indicates that an override document failed schema
	// validation or could not be parsed at all.
	ErrInvalid = errors.New("invalid catalog override")

	// ErrUnsupportedFormat indicates that an override file has an
	// extension other than .yaml, .yml, .toml, or .json.
	ErrUnsupportedFormat = errors.New("unsupported catalog override format")
)

// Catalog holds the four lookup tables consulted during classification.
// All tables map a lookup key to the raw tag strings it implies.
//
// A Catalog is treated as read-only once handed to a classifier. Derive a
// modified copy with Clone or Merge instead of mutating one in place;
// concurrent readers rely on the tables never changing.
type Catalog struct {
	// Extensions maps a lowercased extension (no leading dot) to its tags.
	// Entries here fully determine the encoding facet, so matching one
	// skips the content sniff.
	Extensions map[string][]string

	// ExtensionsNeedBinaryCheck maps extensions whose on-disk encoding is
	// ambiguous. Matching one contributes format tags but still leaves the
	// text/binary decision to the content sniff.
	ExtensionsNeedBinaryCheck map[string][]string

	// Names maps exact basenames (and basename segments, such as
	// "Dockerfile" inside "Dockerfile.xenial") to their tags.
	Names map[string][]string

	// Interpreters maps a bare interpreter name from a resolved shebang
	// ("python3", "bash") to its tags.
	Interpreters map[string][]string
}

// Default returns the vendored catalog. The returned value shares the
// package-level tables and must be treated as read-only; use Clone to
// derive a mutable copy.
func Default() *Catalog {
	return &Catalog{
		Extensions:                defaultExtensions,
		ExtensionsNeedBinaryCheck: defaultExtensionsNeedBinaryCheck,
		Names:                     defaultNames,
		Interpreters:              defaultInterpreters,
	}
}

// Clone returns a deep copy of the catalog that is safe to mutate.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{
		Extensions:                cloneTable(c.Extensions),
		ExtensionsNeedBinaryCheck: cloneTable(c.ExtensionsNeedBinaryCheck),
		Names:                     cloneTable(c.Names),
		Interpreters:              cloneTable(c.Interpreters),
	}
}

// Merge returns a new catalog with the override's entries layered over c.
// An override entry replaces the base entry for the same key; keys absent
// from the override keep the base mapping. Neither input is mutated.
func (c *Catalog) Merge(o *Override) *Catalog {
	out := c.Clone()
	mergeTable(out.Extensions, o.Extensions)
	mergeTable(out.ExtensionsNeedBinaryCheck, o.ExtensionsNeedBinaryCheck)
	mergeTable(out.Names, o.Names)
	mergeTable(out.Interpreters, o.Interpreters)
	return out
}

// Tags returns every distinct tag string any table can produce, sorted.
func (c *Catalog) Tags() []string {
	seen := make(map[string]struct{}, 256)
	for _, table := range []map[string][]string{
		c.Extensions, c.ExtensionsNeedBinaryCheck, c.Names, c.Interpreters,
	} {
		for _, tags := range table {
			for _, t := range tags {
				seen[t] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func cloneTable(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		tags := make([]string, len(v))
		copy(tags, v)
		out[k] = tags
	}
	return out
}

func mergeTable(base map[string][]string, over map[string][]string) {
	for k, v := range over {
		tags := make([]string, len(v))
		copy(tags, v)
		base[k] = tags
	}
}
