package solver

// Score is the sum of the popularity of w's distinct letters.
// A repeated letter counts once.
func Score(w string, table PopularityTable) int {
	var seen [alphabetSize]bool
	total := 0
	for i := 0; i < len(w); i++ {
		ch := w[i]
		if ch < 'a' || ch > 'z' || seen[ch-'a'] {
			continue
		}
		seen[ch-'a'] = true
		total += table[ch-'a']
	}
	return total
}

// ChooseBest returns the highest-scoring word in pool. Ties go to the word
// that appears first, so the result depends only on the pool order.
func ChooseBest(pool []string, table PopularityTable) (string, error) {
	if len(pool) == 0 {
		return "", ErrExhaustedCandidates
	}
	best, bestScore := pool[0], Score(pool[0], table)
	for _, w := range pool[1:] {
		if s := Score(w, table); s > bestScore {
			best, bestScore = w, s
		}
	}
	return best, nil
}
