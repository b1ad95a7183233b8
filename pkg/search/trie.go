package search

import (
	"sort"
	"strings"
)

// CleanString keeps ascii letters and spaces and lowercases the result.
func CleanString(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			sb.WriteByte(c + ('a' - 'A'))
		case c >= 'a' && c <= 'z', c == ' ':
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

type trieNode struct {
	children map[byte]*trieNode
	names    []string // full names stored under the key ending here
}

func newTrieNode() *trieNode {
	return &trieNode{
		children: make(map[byte]*trieNode),
	}
}

func (n *trieNode) addName(name string) {
	for _, existing := range n.names {
		if existing == name {
			return
		}
	}
	n.names = append(n.names, name)
}

func (n *trieNode) sortedKeys() []byte {
	keys := make([]byte, 0, len(n.children))
	for c := range n.children {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

// Trie. prefix tree from cleaned names to the full names that were stored under them.
type Trie struct {
	root *trieNode
	size int
}

func NewTrie() *Trie {
	return &Trie{
		root: newTrieNode(),
	}
}

func (t *Trie) Size() int {
	return t.size
}

// Put stores fullName under key. the same full name is stored once per key.
func (t *Trie) Put(key, fullName string) {
	cur := t.root
	for i := 0; i < len(key); i++ {
		next, ok := cur.children[key[i]]
		if !ok {
			next = newTrieNode()
			cur.children[key[i]] = next
		}
		cur = next
	}
	if len(cur.names) == 0 {
		t.size++
	}
	cur.addName(fullName)
}

// Get returns the full names stored under exactly key.
func (t *Trie) Get(key string) []string {
	n := t.find(key)
	if n == nil {
		return []string{}
	}
	names := make([]string, len(n.names))
	copy(names, n.names)
	return names
}

func (t *Trie) find(key string) *trieNode {
	cur := t.root
	for i := 0; i < len(key); i++ {
		next, ok := cur.children[key[i]]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Prefix returns the full names of every key starting with prefix, in lexicographic key order (a key before its
// extensions).
func (t *Trie) Prefix(prefix string) []string {
	result := make([]string, 0)
	start := t.find(prefix)
	if start == nil {
		return result
	}

	stack := []*trieNode{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		result = append(result, n.names...)

		keys := n.sortedKeys()
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, n.children[keys[i]])
		}
	}
	return result
}
