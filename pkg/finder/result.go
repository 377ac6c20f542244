package finder

import "sort"

// ResultSet is an ordered list of distinct words: shorter words first,
// lexicographic within a length. Treat it as read-only, cached results are shared.
type ResultSet []string

// Group holds the words of a single length.
type Group struct {
	Length int
	Words  []string
}

// Groups splits the result by word length, in ascending length order.
func (r ResultSet) Groups() []Group {
	var groups []Group
	for _, w := range r {
		if n := len(groups); n == 0 || groups[n-1].Length != len(w) {
			groups = append(groups, Group{Length: len(w)})
		}
		g := &groups[len(groups)-1]
		g.Words = append(g.Words, w)
	}
	return groups
}

// OfLength returns the words with exactly n letters.
func (r ResultSet) OfLength(n int) []string {
	lo := sort.Search(len(r), func(i int) bool { return len(r[i]) >= n })
	hi := sort.Search(len(r), func(i int) bool { return len(r[i]) > n })
	if lo == hi {
		return nil
	}
	return r[lo:hi]
}

func newResultSet(found map[string]struct{}) ResultSet {
	words := make(ResultSet, 0, len(found))
	for w := range found {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) < len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}
