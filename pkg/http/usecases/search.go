package usecases

import (
	"strings"

	"github.com/lintang-b-s/bearmaps/pkg/osmparser"
	"github.com/lintang-b-s/bearmaps/pkg/util"
)

type SearchService struct {
	index LocationIndex
	limit int
}

func NewSearchService(index LocationIndex, limit int) *SearchService {
	return &SearchService{
		index: index,
		limit: limit,
	}
}

// Autocomplete full location names starting with prefix, at most limit of them when limit > 0.
func (ss *SearchService) Autocomplete(prefix string) ([]string, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "prefix must not be empty")
	}
	names := ss.index.Autocomplete(prefix)
	if ss.limit > 0 && len(names) > ss.limit {
		names = names[:ss.limit]
	}
	return names, nil
}

func (ss *SearchService) Locations(name string) ([]osmparser.Location, error) {
	locs := ss.index.Locations(name)
	if len(locs) == 0 {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "no location named %q", name)
	}
	return locs, nil
}
