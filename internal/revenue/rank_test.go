package revenue

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

func groups(pairs ...interface{}) []Group {
	out := make([]Group, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Group{
			Key:     int64(pairs[i].(int)),
			Revenue: decimal.RequireFromString(pairs[i+1].(string)),
		})
	}
	return out
}

func TestRankTopTwoMerchants(t *testing.T) {
	ranked, err := Rank(groups(1, "125.00", 2, "100.00", 3, "150.00", 4, "300.00"), 2)
	require.NoError(t, err)

	require.Len(t, ranked, 2)
	assert.Equal(t, int64(4), ranked[0].Key)
	assert.True(t, ranked[0].Revenue.Equal(decimal.RequireFromString("300.00")))
	assert.Equal(t, int64(3), ranked[1].Key)
	assert.True(t, ranked[1].Revenue.Equal(decimal.RequireFromString("150.00")))
}

func TestRankLimitBeyondGroupCount(t *testing.T) {
	ranked, err := Rank(groups(1, "10.00", 2, "20.00"), 10)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestRankTiesBreakByAscendingKey(t *testing.T) {
	ranked, err := Rank(groups(9, "50.00", 3, "50.00", 5, "75.00"), 3)
	require.NoError(t, err)

	assert.Equal(t, int64(5), ranked[0].Key)
	assert.Equal(t, int64(3), ranked[1].Key)
	assert.Equal(t, int64(9), ranked[2].Key)
}

func TestRankRejectsNonPositiveLimit(t *testing.T) {
	for _, limit := range []int{0, -1, -10} {
		_, err := Rank(groups(1, "10.00"), limit)
		require.Error(t, err)
		assert.ErrorIs(t, err, httpx.ErrInvalidArgument)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	in := groups(1, "10.00", 2, "20.00")
	_, err := Rank(in, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), in[0].Key)
}
