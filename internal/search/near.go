package search

// NearMatch reports whether some substring of text is within Levenshtein
// distance maxDist of pattern. Comparison is by rune.
//
// It runs the semi-global edit distance DP: a match may start at any
// position of text at no cost, so only pattern has to be consumed fully.
func NearMatch(pattern, text string, maxDist int) bool {
	p := []rune(pattern)
	t := []rune(text)
	if len(p) <= maxDist {
		return true
	}

	// prev[j] is the cheapest alignment of the first i pattern runes ending
	// at text position j.
	prev := make([]int, len(t)+1)
	cur := make([]int, len(t)+1)
	for i := 1; i <= len(p); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(t); j++ {
			cost := 1
			if p[i-1] == t[j-1] {
				cost = 0
			}
			best := prev[j-1] + cost
			if d := prev[j] + 1; d < best {
				best = d
			}
			if d := cur[j-1] + 1; d < best {
				best = d
			}
			cur[j] = best
			if best < rowMin {
				rowMin = best
			}
		}
		if rowMin > maxDist {
			return false
		}
		prev, cur = cur, prev
	}
	for _, d := range prev {
		if d <= maxDist {
			return true
		}
	}
	return false
}
