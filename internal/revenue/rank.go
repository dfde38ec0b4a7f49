package revenue

import (
	"fmt"
	"sort"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

// Rank orders groups descending by revenue and truncates to limit entries.
// Ties break by ascending key id so results are a deterministic total order.
func Rank(groups []Group, limit int) ([]Group, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rank limit must be positive, got %d: %w", limit, httpx.ErrInvalidArgument)
	}
	ranked := make([]Group, len(groups))
	copy(ranked, groups)
	sort.Slice(ranked, func(i, j int) bool {
		cmp := ranked[i].Revenue.Cmp(ranked[j].Revenue)
		if cmp != 0 {
			return cmp > 0
		}
		return ranked[i].Key < ranked[j].Key
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
