package finder

import "strings"

const alphabetSize = 26

// LetterMultiset is an order-insensitive bag of lower case letters a-z.
type LetterMultiset struct {
	counts [alphabetSize]int
	size   int
}

// ParseLetters case-folds s and counts its letters.
// Anything outside a-z after folding is rejected.
func ParseLetters(s string) (LetterMultiset, error) {
	var m LetterMultiset
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			return LetterMultiset{}, invalid("letters", "unsupported character %q at index %d", s[i], i)
		}
		m.counts[c-'a']++
		m.size++
	}
	return m, nil
}

// Len returns the number of letters, counting repeats.
func (m LetterMultiset) Len() int {
	return m.size
}

// covers reports whether word can be spelled from the multiset,
// using each letter no more often than it occurs.
func (m LetterMultiset) covers(word string) bool {
	var used [alphabetSize]int
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return false
		}
		used[c-'a']++
		if used[c-'a'] > m.counts[c-'a'] {
			return false
		}
	}
	return true
}

// String returns the letters in sorted order, e.g. "aab".
func (m LetterMultiset) String() string {
	var b strings.Builder
	b.Grow(m.size)
	for i, n := range m.counts {
		for j := 0; j < n; j++ {
			b.WriteByte(byte('a' + i))
		}
	}
	return b.String()
}

// table returns the sorted distinct letters and their counts.
// The counts slice is a fresh copy that the search mutates in place.
func (m LetterMultiset) table() ([]byte, []int) {
	letters := make([]byte, 0, alphabetSize)
	counts := make([]int, 0, alphabetSize)
	for i, n := range m.counts {
		if n > 0 {
			letters = append(letters, byte('a'+i))
			counts = append(counts, n)
		}
	}
	return letters, counts
}
