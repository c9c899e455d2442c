// Package fuzzy computes "did you mean" suggestions for unknown column
// names using Levenshtein edit distance.
package fuzzy

// Suggest returns the candidate closest to name, or "" if no candidate is
// close enough to be a plausible typo. The threshold scales with the
// length of the name: short names tolerate one edit, longer names up to
// half their length.
func Suggest(name string, candidates []string) string {
	if name == "" || len(candidates) == 0 {
		return ""
	}

	maxDist := len(name) / 2
	if maxDist < 1 {
		maxDist = 1
	}
	if maxDist > 4 {
		maxDist = 4
	}

	best := ""
	bestDist := maxDist + 1
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		d := distance(name, cand)
		if d < bestDist {
			bestDist = d
			best = cand
		}
	}
	return best
}

// distance computes the Levenshtein edit distance between a and b using
// the two-row dynamic programming formulation.
func distance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
