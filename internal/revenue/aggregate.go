package revenue

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Group is one aggregation partition: an entity key and its summed revenue.
type Group struct {
	Key     int64
	Revenue decimal.Decimal
}

// SumRows collapses rows to a single scalar sum. Empty input yields zero,
// never an absent value.
func SumRows(rows []LineItemRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Total())
	}
	return total
}

// SumByKey partitions rows by the supplied key selector and sums each
// partition. Each row contributes exactly once regardless of how many
// transactions its invoice carries; the store guarantees rows are not
// multiplied by transaction joins. Groups are returned in ascending key
// order so output is deterministic before ranking.
func SumByKey(rows []LineItemRow, key func(LineItemRow) int64) []Group {
	totals := make(map[int64]decimal.Decimal)
	for _, row := range rows {
		k := key(row)
		totals[k] = totals[k].Add(row.Total())
	}
	groups := make([]Group, 0, len(totals))
	for k, revenue := range totals {
		groups = append(groups, Group{Key: k, Revenue: revenue})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// SumByWeek buckets rows into Monday-aligned calendar weeks and sums each
// bucket, ordered ascending by week start. Weeks without eligible rows are
// omitted, not zero-filled.
func SumByWeek(rows []LineItemRow) []WeekRevenue {
	totals := make(map[int64]decimal.Decimal)
	for _, row := range rows {
		week := WeekStart(row.CreatedAt).Unix()
		totals[week] = totals[week].Add(row.Total())
	}
	weeks := make([]WeekRevenue, 0, len(totals))
	for week, revenue := range totals {
		weeks = append(weeks, WeekRevenue{WeekStart: unixUTC(week), Revenue: revenue})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].WeekStart.Before(weeks[j].WeekStart) })
	return weeks
}

func unixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// Key selectors for the supported grouping dimensions.
func byMerchant(r LineItemRow) int64 { return r.MerchantID }
func byItem(r LineItemRow) int64     { return r.ItemID }
func byInvoice(r LineItemRow) int64  { return r.InvoiceID }
