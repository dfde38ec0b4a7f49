package revenue

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(invoiceID, merchantID, itemID, qty int64, price string, created time.Time) LineItemRow {
	return LineItemRow{
		InvoiceID:  invoiceID,
		MerchantID: merchantID,
		ItemID:     itemID,
		CreatedAt:  created,
		Quantity:   qty,
		UnitPrice:  decimal.RequireFromString(price),
	}
}

func TestSumRowsUsesStoredUnitPrice(t *testing.T) {
	created := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []LineItemRow{
		row(1, 1, 1, 5, "5.00", created),
		row(1, 1, 1, 10, "5.00", created),
	}
	assert.True(t, SumRows(rows).Equal(decimal.RequireFromString("75.00")))
}

func TestSumRowsEmptyIsZero(t *testing.T) {
	total := SumRows(nil)
	assert.True(t, total.Equal(decimal.Zero))
}

func TestSumByKeyPartitions(t *testing.T) {
	created := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := []LineItemRow{
		row(1, 10, 100, 2, "12.50", created),
		row(2, 10, 101, 1, "25.00", created),
		row(3, 20, 100, 4, "10.00", created),
	}

	byMerchantGroups := SumByKey(rows, byMerchant)
	require.Len(t, byMerchantGroups, 2)
	assert.Equal(t, int64(10), byMerchantGroups[0].Key)
	assert.True(t, byMerchantGroups[0].Revenue.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, int64(20), byMerchantGroups[1].Key)
	assert.True(t, byMerchantGroups[1].Revenue.Equal(decimal.RequireFromString("40.00")))

	byItemGroups := SumByKey(rows, byItem)
	require.Len(t, byItemGroups, 2)
	assert.Equal(t, int64(100), byItemGroups[0].Key)
	assert.True(t, byItemGroups[0].Revenue.Equal(decimal.RequireFromString("65.00")))
}

func TestSumByWeekOrdersChronologically(t *testing.T) {
	week1 := time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC)
	week2 := week1.AddDate(0, 0, 7)
	rows := []LineItemRow{
		row(3, 1, 1, 1, "30.00", week2.Add(48*time.Hour)),
		row(1, 1, 1, 1, "10.00", week1.Add(2*time.Hour)),
		row(2, 1, 1, 2, "10.00", week1.Add(72*time.Hour)),
	}

	weeks := SumByWeek(rows)
	require.Len(t, weeks, 2)
	assert.Equal(t, week1, weeks[0].WeekStart)
	assert.True(t, weeks[0].Revenue.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, week2, weeks[1].WeekStart)
	assert.True(t, weeks[1].Revenue.Equal(decimal.RequireFromString("30.00")))
}

func TestSumByWeekOmitsEmptyWeeks(t *testing.T) {
	week1 := time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC)
	week3 := week1.AddDate(0, 0, 14)
	rows := []LineItemRow{
		row(1, 1, 1, 1, "10.00", week1),
		row(2, 1, 1, 1, "20.00", week3),
	}

	weeks := SumByWeek(rows)
	require.Len(t, weeks, 2)
	assert.Equal(t, week1, weeks[0].WeekStart)
	assert.Equal(t, week3, weeks[1].WeekStart)
}
