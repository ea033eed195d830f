package classify

import "fmt"

// Validate checks the facet invariants of a classification result:
// the set contains exactly one type tag; if that tag is "file" the set also
// contains exactly one mode tag and exactly one encoding tag; for any other
// type tag the mode and encoding facets must be absent.
//
// The classifier calls this before every successful return, and tests can
// call it directly against crafted sets. A non-nil error wraps
// ErrInvalidTagSet.
func Validate(tags TagSet) error {
	switch n := tags.countIn(TypeTags); n {
	case 1:
	case 0:
		return fmt.Errorf("%w: no type tag in %v", ErrInvalidTagSet, tags.Slice())
	default:
		return fmt.Errorf("%w: %d type tags in %v", ErrInvalidTagSet, n, tags.Slice())
	}

	modes := tags.countIn(ModeTags)
	encodings := tags.countIn(EncodingTags)

	if !tags.Has(TagFile) {
		if modes != 0 || encodings != 0 {
			return fmt.Errorf("%w: mode/encoding tags on a non-file entry %v", ErrInvalidTagSet, tags.Slice())
		}
		return nil
	}
	if modes != 1 {
		return fmt.Errorf("%w: %d mode tags in %v", ErrInvalidTagSet, modes, tags.Slice())
	}
	if encodings != 1 {
		return fmt.Errorf("%w: %d encoding tags in %v", ErrInvalidTagSet, encodings, tags.Slice())
	}
	return nil
}
