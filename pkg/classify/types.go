package classify

import (
	"sort"
	"strings"
)

// Tag is a single classification label attached to a filesystem entry.
// Tags are plain strings so the catalog can introduce new format and
// language tags freely, but the type, mode, and encoding facets are
// closed enumerations represented by the constants below.
type Tag string

// Type facet tags. Every successful classification carries exactly one.
const (
	TagDirectory Tag = "directory"
	TagSymlink   Tag = "symlink"
	TagSocket    Tag = "socket"
	TagFile      Tag = "file"
)

// Mode facet tags. Regular files carry exactly one.
const (
	TagExecutable    Tag = "executable"
	TagNonExecutable Tag = "non-executable"
)

// Encoding facet tags. Regular files carry exactly one.
const (
	TagText   Tag = "text"
	TagBinary Tag = "binary"
)

// Closed facet sets. Exposed for callers that need to partition a result
// into its facets (for example, to strip encoding tags before a re-check).
var (
	TypeTags     = NewTagSet(TagDirectory, TagFile, TagSymlink, TagSocket)
	ModeTags     = NewTagSet(TagExecutable, TagNonExecutable)
	EncodingTags = NewTagSet(TagBinary, TagText)
)

// TagSet is an unordered, deduplicated collection of tags describing one
// filesystem entry. The zero value is not usable; construct with NewTagSet.
type TagSet map[Tag]struct{}

// NewTagSet returns a TagSet containing the given tags.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Add inserts the given tags into the set.
func (s TagSet) Add(tags ...Tag) {
	for _, t := range tags {
		s[t] = struct{}{}
	}
}

// AddStrings inserts raw catalog tag strings into the set.
func (s TagSet) AddStrings(tags []string) {
	for _, t := range tags {
		s[Tag(t)] = struct{}{}
	}
}

// Has reports whether the set contains t.
func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

// Union adds every tag in other to s and returns s.
func (s TagSet) Union(other TagSet) TagSet {
	for t := range other {
		s[t] = struct{}{}
	}
	return s
}

// Intersects reports whether the two sets share at least one tag.
func (s TagSet) Intersects(other TagSet) bool {
	// Iterate the smaller set.
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets contain exactly the same tags.
func (s TagSet) Equal(other TagSet) bool {
	if len(s) != len(other) {
		return false
	}
	for t := range s {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Slice returns the tags as a sorted string slice, suitable for stable
// output and JSON encoding.
func (s TagSet) Slice() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}

// String renders the set as a comma-separated sorted list.
func (s TagSet) String() string {
	return strings.Join(s.Slice(), ", ")
}

// countIn returns how many tags of s fall inside the given facet.
func (s TagSet) countIn(facet TagSet) int {
	n := 0
	for t := range facet {
		if s.Has(t) {
			n++
		}
	}
	return n
}

// Status defines the processing states of a path during a bulk scan run.
type Status string

// Constants representing the defined scan statuses.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusClassified Status = "classified"
	StatusFailed     Status = "failed"
	StatusSkipped    Status = "skipped"
)

// OnErrorMode defines the behavior when a non-fatal error occurs while
// classifying a path during a scan.
type OnErrorMode string

const (
	OnErrorContinue OnErrorMode = "continue"
	OnErrorStop     OnErrorMode = "stop"
)

// OutputFormat defines the format for the final scan report printed to
// standard output when the TUI is disabled.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)
