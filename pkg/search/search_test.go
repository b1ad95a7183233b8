package search

import (
	"testing"

	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestCleanString(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{in: "Peet's Coffee & Tea", want: "peets coffee  tea"},
		{in: "7-Eleven", want: "eleven"},
		{in: "  Top Dog ", want: "  top dog "},
		{in: "Café", want: "caf"},
		{in: "", want: ""},
	}
	for _, tt := range testCases {
		assert.Equal(t, tt.want, CleanString(tt.in), tt.in)
	}
}

func TestTriePrefix(t *testing.T) {
	trie := NewTrie()
	trie.Put("abc", "Number1")
	trie.Put("ab", "Number2")
	trie.Put("a", "Number3")
	trie.Put("last", "Number4")
	trie.Put("abd", "Number5")

	testCases := []struct {
		name   string
		prefix string
		want   []string
	}{
		{name: "all keys starting with a", prefix: "a", want: []string{"Number3", "Number2", "Number1", "Number5"}},
		{name: "inner node", prefix: "ab", want: []string{"Number2", "Number1", "Number5"}},
		{name: "leaf", prefix: "last", want: []string{"Number4"}},
		{name: "empty prefix returns everything", prefix: "", want: []string{"Number3", "Number2", "Number1", "Number5", "Number4"}},
		{name: "no match", prefix: "z", want: []string{}},
		{name: "longer than any key", prefix: "abcd", want: []string{}},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, trie.Prefix(tt.prefix))
		})
	}
	assert.Equal(t, 5, trie.Size())
}

func TestTrieDuplicates(t *testing.T) {
	trie := NewTrie()
	trie.Put("top dog", "Top Dog")
	trie.Put("top dog", "Top Dog")
	trie.Put("top dog", "TOP DOG")

	assert.Equal(t, []string{"Top Dog", "TOP DOG"}, trie.Get("top dog"))
	assert.Equal(t, 1, trie.Size())
	assert.Empty(t, trie.Get("top"))
}

func TestIndex(t *testing.T) {
	locations := []osmparser.Location{
		osmparser.NewLocation(1, "Top Dog", 37.8675, -122.2580),
		osmparser.NewLocation(2, "Top Dog", 37.8790, -122.2690),
		osmparser.NewLocation(3, "Tooth Doctor", 37.8700, -122.2700),
		osmparser.NewLocation(4, "Peet's Coffee", 37.8710, -122.2680),
		osmparser.NewLocation(5, "!!!", 37.8710, -122.2680),
	}
	idx := NewIndex(locations, zap.NewNop())

	assert.Equal(t, []string{"Tooth Doctor", "Top Dog"}, idx.Autocomplete("to"))
	assert.Equal(t, []string{"Top Dog"}, idx.Autocomplete("TOP "))
	assert.Equal(t, []string{"Peet's Coffee"}, idx.Autocomplete("peets"))
	assert.Empty(t, idx.Autocomplete("xyz"))

	got := idx.Locations("top dog")
	assert.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	assert.Len(t, idx.Locations("Peets Coffee"), 1)
	assert.Empty(t, idx.Locations("Top"))
}
