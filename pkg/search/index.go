package search

import (
	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"go.uber.org/zap"
)

// Index. name search over the map locations. read-only after NewIndex.
type Index struct {
	trie      *Trie
	locations map[string][]osmparser.Location // cleaned name -> locations
}

func NewIndex(locations []osmparser.Location, log *zap.Logger) *Index {
	idx := &Index{
		trie:      NewTrie(),
		locations: make(map[string][]osmparser.Location),
	}
	for _, loc := range locations {
		cleaned := CleanString(loc.Name)
		if cleaned == "" {
			continue
		}
		idx.trie.Put(cleaned, loc.Name)
		idx.locations[cleaned] = append(idx.locations[cleaned], loc)
	}
	if log != nil {
		log.Info("location search index built", zap.Int("locations", len(locations)),
			zap.Int("distinctNames", idx.trie.Size()))
	}
	return idx
}

// Autocomplete full names of the locations whose cleaned name starts with the cleaned prefix. each name once.
func (idx *Index) Autocomplete(prefix string) []string {
	names := idx.trie.Prefix(CleanString(prefix))
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}

// Locations every location whose cleaned name equals the cleaned locationName.
func (idx *Index) Locations(locationName string) []osmparser.Location {
	locs := idx.locations[CleanString(locationName)]
	result := make([]osmparser.Location, len(locs))
	copy(result, locs)
	return result
}
