// internal/solver/corpus.go
//
// Corpus is the process-wide, read-only configuration every game shares:
// the ordered word list and the letter-popularity table derived from it.
//
// Notes:
//   - NewCorpus does all the work up front; nothing is computed lazily, so a
//     *Corpus can be handed to any number of concurrent games.
//   - Popularity is counted with one bitset per letter marking which corpus
//     words contain it; the sets are discarded once counted.

package solver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

const alphabetSize = 26

// PopularityTable maps each letter a–z to the number of corpus words that
// contain it at least once.
type PopularityTable [alphabetSize]int

// Of returns the popularity of letter c, or 0 for anything outside a–z.
func (t PopularityTable) Of(c byte) int {
	if c < 'a' || c > 'z' {
		return 0
	}
	return t[c-'a']
}

// Corpus is an immutable, de-duplicated, ordered list of five-letter words.
type Corpus struct {
	words      []string
	index      map[string]int
	popularity PopularityTable
}

// NewCorpus validates words and builds the letter index and popularity table.
// Duplicates are dropped keeping the first occurrence. Any word that is not
// exactly five lowercase letters is rejected.
func NewCorpus(words []string) (*Corpus, error) {
	c := &Corpus{
		words: make([]string, 0, len(words)),
		index: make(map[string]int, len(words)),
	}
	for _, w := range words {
		if !IsWord(w) {
			return nil, fmt.Errorf("solver: corpus word %q is not %d lowercase letters", w, WordLength)
		}
		if _, dup := c.index[w]; dup {
			continue
		}
		c.index[w] = len(c.words)
		c.words = append(c.words, w)
	}
	if len(c.words) == 0 {
		return nil, ErrEmptyCorpus
	}

	c.popularity = popularity(c.words)
	return c, nil
}

// popularity sets bit i of containing[l] when words[i] holds letter l, then
// takes population counts, so repeated letters in a word count once.
func popularity(words []string) PopularityTable {
	var containing [alphabetSize]*bitset.BitSet
	n := uint(len(words))
	for l := range containing {
		containing[l] = bitset.New(n)
	}
	for i, w := range words {
		for j := 0; j < WordLength; j++ {
			containing[w[j]-'a'].Set(uint(i))
		}
	}
	var t PopularityTable
	for l, set := range containing {
		t[l] = int(set.Count())
	}
	return t
}

// Len returns the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// Words returns a copy of the words in corpus order.
func (c *Corpus) Words() []string {
	return append([]string(nil), c.words...)
}

// Contains reports whether w is a corpus word.
func (c *Corpus) Contains(w string) bool {
	_, ok := c.index[w]
	return ok
}

// Popularity returns the letter-popularity table.
func (c *Corpus) Popularity() PopularityTable { return c.popularity }

// CountContaining returns how many corpus words contain letter l.
func (c *Corpus) CountContaining(l byte) int { return c.popularity.Of(l) }

// IsWord reports whether w is exactly five lowercase ASCII letters.
func IsWord(w string) bool {
	if len(w) != WordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
