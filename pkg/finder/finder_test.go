package finder

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mkzafar/wordgames/pkg/dictionary"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// mapLexicon only answers exact membership, so searches over it run unpruned.
type mapLexicon map[string]struct{}

func (m mapLexicon) Contains(word string) bool {
	_, ok := m[word]
	return ok
}

func newMapLexicon(words ...string) mapLexicon {
	m := make(mapLexicon, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// recordingLexicon remembers every sequence it was asked about.
type recordingLexicon struct {
	asked []string
}

func (r *recordingLexicon) Contains(word string) bool {
	r.asked = append(r.asked, word)
	return false
}

// countingLexicon counts membership checks made through a PrefixLexicon.
type countingLexicon struct {
	PrefixLexicon
	contains int
}

func (c *countingLexicon) Contains(word string) bool {
	c.contains++
	return c.PrefixLexicon.Contains(word)
}

var sampleWords = []string{
	"a", "act", "acts", "ant", "ants", "art", "arts", "at", "cant", "car", "cars", "cart",
	"carts", "cast", "cat", "cats", "eat", "eats", "ear", "ears", "east", "era", "eras",
	"nest", "net", "nets", "rant", "rants", "rat", "rate", "rates", "rats", "rest", "sat",
	"sea", "seat", "set", "star", "stare", "start", "tack", "tar", "tars", "tea", "tear",
	"tears", "teas", "ten", "tens", "tent", "test", "treat", "trance", "scant", "scar",
	"scat", "canter", "nectar", "recant", "trances", "aa", "aaa", "baa", "bab", "abba",
}

func TestFindWordsExamples(t *testing.T) {
	testCases := []struct {
		name     string
		words    []string
		letters  string
		min, max int
		want     ResultSet
	}{
		{
			name:    "cats across two lengths",
			words:   []string{"cat", "act", "cats", "tack"},
			letters: "cats",
			min:     3, max: 4,
			want: ResultSet{"act", "cat", "cats"},
		},
		{
			name:    "repeated letters listed once",
			words:   []string{"aa", "aaa"},
			letters: "aaa",
			min:     2, max: 3,
			want: ResultSet{"aa", "aaa"},
		},
		{
			name:    "full length anagrams only",
			words:   []string{"cat", "act", "cats", "cast", "scat", "tack"},
			letters: "cats",
			min:     4, max: 4,
			want: ResultSet{"cast", "cats", "scat"},
		},
		{
			name:    "min above letter count",
			words:   []string{"cat"},
			letters: "cat",
			min:     4, max: 5,
			want: ResultSet{},
		},
		{
			name:    "upper case input",
			words:   []string{"cat", "act"},
			letters: "CAT",
			min:     3, max: 3,
			want: ResultSet{"act", "cat"},
		},
		{
			name:    "empty dictionary",
			letters: "cats",
			min:     1, max: 4,
			want: ResultSet{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := dictionary.New(tc.words...)
			got, err := FindWords(context.Background(), d, tc.letters, tc.min, tc.max)
			if err != nil {
				t.Fatalf("FindWords() error = %v", err)
			}
			if !reflect.DeepEqual(tc.want, got) {
				t.Errorf("FindWords() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFindGroupsByLength(t *testing.T) {
	d := dictionary.New("cat", "act", "cats", "tack")
	got, err := FindWords(context.Background(), d, "cats", 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if w := got.OfLength(3); !reflect.DeepEqual(w, []string{"act", "cat"}) {
		t.Errorf("OfLength(3) = %v", w)
	}
	if w := got.OfLength(4); !reflect.DeepEqual(w, []string{"cats"}) {
		t.Errorf("OfLength(4) = %v", w)
	}
	if w := got.OfLength(5); w != nil {
		t.Errorf("OfLength(5) = %v, want nil", w)
	}
}

func TestFindInvalidRequest(t *testing.T) {
	d := dictionary.New("cat")
	testCases := []struct {
		name     string
		letters  string
		min, max int
	}{
		{"zero min", "cat", 0, 3},
		{"negative min", "cat", -1, 3},
		{"max below min", "cats", 3, 2},
		{"max above letters", "cat", 2, 4},
		{"digit", "c4t", 1, 3},
		{"space", "ca t", 1, 3},
		{"non ascii", "café", 1, 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindWords(context.Background(), d, tc.letters, tc.min, tc.max)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("FindWords() error = %v, want ErrInvalidRequest", err)
			}
			var reqErr *InvalidRequestError
			if !errors.As(err, &reqErr) || reqErr.Field == "" {
				t.Errorf("error %v does not carry the offending field", err)
			}
		})
	}
}

// Search is reachable without NewRequest, so it must cope with unvalidated bounds.
func TestSearchUnvalidatedRequest(t *testing.T) {
	d := dictionary.New("cat", "act", "cats")
	letters, err := ParseLetters("cats")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := New(d).Search(context.Background(), SearchRequest{Letters: letters}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("zero value request: error = %v, want ErrInvalidRequest", err)
	}
	testCases := []struct {
		name     string
		min, max int
	}{
		{"zero max", 3, 0},
		{"negative max", 1, -2},
		{"max below min", 4, 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := New(d).Search(context.Background(), SearchRequest{Letters: letters, MinLength: tc.min, MaxLength: tc.max})
			if err != nil || len(got) != 0 {
				t.Errorf("Search() = %v, %v, want an empty result", got, err)
			}
		})
	}
}

// Every result must be spelled by the letters and be a dictionary word, and every such
// dictionary word must be in the result exactly once.
func TestFindMatchesBruteForce(t *testing.T) {
	d := dictionary.New(sampleWords...)
	inputs := []struct {
		letters  string
		min, max int
	}{
		{"cats", 1, 4},
		{"trances", 3, 7},
		{"eartsnc", 2, 5},
		{"aaab", 1, 4},
		{"tseatr", 3, 6},
		{"xyz", 1, 3},
	}

	for _, in := range inputs {
		t.Run(in.letters, func(t *testing.T) {
			set, err := ParseLetters(in.letters)
			if err != nil {
				t.Fatal(err)
			}
			var want []string
			for _, w := range d.Words() {
				if len(w) >= in.min && len(w) <= in.max && set.covers(w) {
					want = append(want, w)
				}
			}
			sort.Slice(want, func(i, j int) bool {
				if len(want[i]) != len(want[j]) {
					return len(want[i]) < len(want[j])
				}
				return want[i] < want[j]
			})

			got, err := FindWords(context.Background(), d, in.letters, in.min, in.max)
			if err != nil {
				t.Fatal(err)
			}
			if len(want) == 0 && len(got) == 0 {
				return
			}
			if !reflect.DeepEqual(ResultSet(want), got) {
				t.Errorf("FindWords(%q) = %v, want %v", in.letters, got, want)
			}
			seen := make(map[string]bool)
			for _, w := range got {
				if seen[w] {
					t.Errorf("duplicate word %q", w)
				}
				seen[w] = true
				if !set.covers(w) || !d.Contains(w) {
					t.Errorf("word %q is not spelled by %q or not in the dictionary", w, in.letters)
				}
			}
		})
	}
}

func TestPrunedMatchesUnpruned(t *testing.T) {
	d := dictionary.New(sampleWords...)
	plain := newMapLexicon(d.Words()...)

	pruned := New(d)
	unpruned := New(d, WithoutPruning())
	mapOnly := New(plain)
	if !pruned.pruning() || unpruned.pruning() || mapOnly.pruning() {
		t.Fatalf("pruning() = %v/%v/%v, want true/false/false", pruned.pruning(), unpruned.pruning(), mapOnly.pruning())
	}

	for _, letters := range []string{"trances", "aaab", "stare", "abba", "nectars"} {
		n := len(letters)
		a, err := pruned.Find(context.Background(), letters, 1, n)
		if err != nil {
			t.Fatal(err)
		}
		b, err := unpruned.Find(context.Background(), letters, 1, n)
		if err != nil {
			t.Fatal(err)
		}
		c, err := mapOnly.Find(context.Background(), letters, 1, n)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) || !reflect.DeepEqual(a, c) {
			t.Errorf("%q: pruned %v, unpruned %v, map %v", letters, a, b, c)
		}
	}
}

func TestPruningSkipsDeadBranches(t *testing.T) {
	d := dictionary.New("cat")
	pruned := &countingLexicon{PrefixLexicon: d}
	unpruned := &countingLexicon{PrefixLexicon: d}

	if _, err := New(pruned).Find(context.Background(), "tacsxyz", 1, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := New(unpruned, WithoutPruning()).Find(context.Background(), "tacsxyz", 1, 7); err != nil {
		t.Fatal(err)
	}
	if pruned.contains >= unpruned.contains {
		t.Errorf("pruned search made %d membership checks, unpruned %d", pruned.contains, unpruned.contains)
	}
}

// stringCountingDict counts the string queries that reach the dictionary.
type stringCountingDict struct {
	*dictionary.Dictionary
	strings int
}

func (c *stringCountingDict) Contains(word string) bool {
	c.strings++
	return c.Dictionary.Contains(word)
}

func (c *stringCountingDict) HasPrefix(prefix string) bool {
	c.strings++
	return c.Dictionary.HasPrefix(prefix)
}

func TestSearchQueriesBytesWhenSupported(t *testing.T) {
	d := &stringCountingDict{Dictionary: dictionary.New(sampleWords...)}
	got, err := New(d).Find(context.Background(), "trances", 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	want, err := New(newMapLexicon(sampleWords...)).Find(context.Background(), "trances", 1, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("byte queries found %v, want %v", got, want)
	}
	if d.strings != 0 {
		t.Errorf("search made %d string queries, want 0", d.strings)
	}
}

// "aab" has exactly eight distinct sequences of length 1 to 3.
func TestEachSequenceVisitedOnce(t *testing.T) {
	rec := &recordingLexicon{}
	if _, err := New(rec).Find(context.Background(), "aba", 1, 3); err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "aa", "aab", "ab", "aba", "b", "ba", "baa"}
	if !reflect.DeepEqual(want, rec.asked) {
		t.Errorf("visited %v, want %v", rec.asked, want)
	}
}

func TestFindIsIdempotent(t *testing.T) {
	d := dictionary.New(sampleWords...)
	first, err := FindWords(context.Background(), d, "trances", 2, 7)
	if err != nil {
		t.Fatal(err)
	}
	second, err := FindWords(context.Background(), d, "trances", 2, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated search differs: %v vs %v", first, second)
	}
}

func TestFindCancelled(t *testing.T) {
	d := dictionary.New(sampleWords...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(d, WithCheckInterval(1)).Find(ctx, "trances", 1, 7)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Find() error = %v, want context.Canceled", err)
	}
}

func TestFindIgnoresContextWhenChecksDisabled(t *testing.T) {
	d := dictionary.New("cat")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := New(d, WithCheckInterval(0)).Find(ctx, "cat", 3, 3)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if !reflect.DeepEqual(ResultSet{"cat"}, got) {
		t.Errorf("Find() = %v", got)
	}
}

func TestConcurrentSearches(t *testing.T) {
	d := dictionary.New(sampleWords...)
	f := New(d)
	want, err := f.Find(context.Background(), "trances", 3, 7)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := f.Find(context.Background(), "trances", 3, 7)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(want, got) {
				errs <- errors.New("concurrent result differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestResultSetGroups(t *testing.T) {
	r := ResultSet{"at", "act", "cat", "cats"}
	want := []Group{
		{Length: 2, Words: []string{"at"}},
		{Length: 3, Words: []string{"act", "cat"}},
		{Length: 4, Words: []string{"cats"}},
	}
	if got := r.Groups(); !reflect.DeepEqual(want, got) {
		t.Errorf("Groups() = %+v, want %+v", got, want)
	}
	if got := (ResultSet{}).Groups(); len(got) != 0 {
		t.Errorf("Groups() of empty result = %+v", got)
	}
}

func TestLetterMultiset(t *testing.T) {
	m, err := ParseLetters("BaNaNa")
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 6 {
		t.Errorf("Len() = %d, want 6", m.Len())
	}
	if m.String() != "aaabnn" {
		t.Errorf("String() = %q", m.String())
	}
	if !m.covers("nab") || m.covers("bb") || m.covers("Nab") {
		t.Error("covers() gave the wrong answer")
	}
}

func TestRequestKey(t *testing.T) {
	a, err := NewRequest("tac", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewRequest("CAT", 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func BenchmarkFindPruned(b *testing.B) {
	d := dictionary.New(sampleWords...)
	f := New(d)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Find(ctx, "trancesbdlo", 3, 11); err != nil {
			b.Fatal(err)
		}
	}
}

func TestClampRange(t *testing.T) {
	testCases := []struct {
		n, min, max, floor int
		lo, hi             int
		ok                 bool
	}{
		{n: 4, min: 3, max: 0, floor: 3, lo: 3, hi: 4, ok: true},
		{n: 4, min: 1, max: 10, floor: 3, lo: 3, hi: 4, ok: true},
		{n: 6, min: 4, max: 5, floor: 3, lo: 4, hi: 5, ok: true},
		{n: 2, min: 3, max: 0, floor: 3, lo: 3, hi: 2, ok: false},
		{n: 5, min: 5, max: 4, floor: 3, lo: 5, hi: 4, ok: false},
		{n: 3, min: 0, max: 0, floor: 0, lo: 1, hi: 3, ok: true},
	}
	for _, tc := range testCases {
		lo, hi, ok := ClampRange(tc.n, tc.min, tc.max, tc.floor)
		if lo != tc.lo || hi != tc.hi || ok != tc.ok {
			t.Errorf("ClampRange(%d, %d, %d, %d) = %d, %d, %t, want %d, %d, %t",
				tc.n, tc.min, tc.max, tc.floor, lo, hi, ok, tc.lo, tc.hi, tc.ok)
		}
	}
}
