/*
Package dictionary holds the immutable word index used by the finder and the grid solver.

Words are stored lower case in a Patricia trie, which answers both exact membership
and prefix queries in time proportional to the query length:

	dict, err := dictionary.LoadFile("dictionary.txt")
	dict.Contains("cat")  // true
	dict.HasPrefix("ca")  // true, some word starts with "ca"

A Dictionary is built once and never mutated afterwards, so any number of goroutines
may query it at the same time without locking.
*/
package dictionary

import (
	"sort"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// present is stored as the trie item for every word, Match needs a non-nil item.
var present = struct{}{}

// Dictionary is a read-only set of lower case words.
type Dictionary struct {
	trie    *patricia.Trie
	count   int
	longest int
}

// New builds a Dictionary from the given words.
// Every word is trimmed and lower cased, empty words are dropped.
func New(words ...string) *Dictionary {
	d := empty()
	for _, w := range words {
		d.add(w)
	}
	return d
}

func empty() *Dictionary {
	return &Dictionary{trie: patricia.NewTrie()}
}

// add inserts a word, only used while the Dictionary is being built.
func (d *Dictionary) add(raw string) {
	word := Normalize(raw)
	if word == "" {
		return
	}
	if d.trie.Insert(patricia.Prefix(word), present) {
		d.count++
		if len(word) > d.longest {
			d.longest = len(word)
		}
	}
}

// Contains reports whether word is in the dictionary.
// The lookup folds word to lower case, the same way Load does.
func (d *Dictionary) Contains(word string) bool {
	if d == nil || word == "" {
		return false
	}
	return d.trie.Match(patricia.Prefix(strings.ToLower(word)))
}

// HasPrefix reports whether any stored word begins with prefix.
// The empty prefix matches when the dictionary holds at least one word.
func (d *Dictionary) HasPrefix(prefix string) bool {
	if d == nil || d.count == 0 {
		return false
	}
	if prefix == "" {
		return true
	}
	return d.trie.MatchSubtree(patricia.Prefix(strings.ToLower(prefix)))
}

// ContainsBytes is Contains for a word that is already lower case.
// It does not copy word, which lets the finder query straight from its buffer.
func (d *Dictionary) ContainsBytes(word []byte) bool {
	if d == nil || len(word) == 0 {
		return false
	}
	return d.trie.Match(patricia.Prefix(word))
}

// HasPrefixBytes is HasPrefix for a prefix that is already lower case.
func (d *Dictionary) HasPrefixBytes(prefix []byte) bool {
	if d == nil || d.count == 0 {
		return false
	}
	return len(prefix) == 0 || d.trie.MatchSubtree(patricia.Prefix(prefix))
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}

// Longest returns the length of the longest stored word.
func (d *Dictionary) Longest() int {
	if d == nil {
		return 0
	}
	return d.longest
}

// Words returns every stored word in ascending order.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	words := make([]string, 0, d.count)
	_ = d.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		words = append(words, string(p))
		return nil
	})
	sort.Strings(words)
	return words
}

// Filter returns the candidates that are dictionary words, normalized the same way Load
// normalizes lines. Order and repeats of the input are preserved, empty candidates are skipped.
func (d *Dictionary) Filter(candidates []string) []string {
	valid := make([]string, 0, len(candidates))
	for _, c := range candidates {
		w := Normalize(c)
		if w == "" {
			continue
		}
		if d.Contains(w) {
			valid = append(valid, w)
		}
	}
	return valid
}

// Normalize trims surrounding whitespace and lower cases a word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
