package license

// BoundedLevenshtein computes the unit-cost Levenshtein distance between
// a and b (insertions, deletions, substitutions), aborting as soon as
// the distance is known to exceed cutoff. When the bound is exceeded the
// return value is cutoff, which callers treat as "no match"; values
// strictly below cutoff are exact.
func BoundedLevenshtein(a, b string, cutoff int) int {
	if a == b {
		return 0
	}
	if cutoff <= 0 {
		return 0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(rb)-len(ra) >= cutoff {
		return cutoff
	}

	prev := make([]int, len(ra)+1)
	cur := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		cur[0] = j
		rowMin := cur[0]
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d := prev[i-1] + cost
			if del := prev[i] + 1; del < d {
				d = del
			}
			if ins := cur[i-1] + 1; ins < d {
				d = ins
			}
			cur[i] = d
			if d < rowMin {
				rowMin = d
			}
		}
		// Every cell in later rows can only grow from here, so once the
		// whole row is at or past the cutoff the final distance is too.
		if rowMin >= cutoff {
			return cutoff
		}
		prev, cur = cur, prev
	}

	if prev[len(ra)] >= cutoff {
		return cutoff
	}
	return prev[len(ra)]
}
