// Package revenue implements the commerce revenue aggregation engine:
// eligibility rules, grouped sums over invoice line items, ranking, date
// windows, and weekly bucketing.
package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the fulfilment state of an invoice.
type InvoiceStatus string

const (
	StatusShipped  InvoiceStatus = "shipped"
	StatusPackaged InvoiceStatus = "packaged"
	StatusReturned InvoiceStatus = "returned"
)

// TransactionResult is the outcome of a payment attempt against an invoice.
type TransactionResult string

const (
	ResultSuccess  TransactionResult = "success"
	ResultFailed   TransactionResult = "failed"
	ResultRefunded TransactionResult = "refunded"
)

// Transaction is a payment attempt recorded against an invoice.
type Transaction struct {
	ID        int64             `json:"id" db:"id"`
	InvoiceID int64             `json:"invoice_id" db:"invoice_id"`
	Result    TransactionResult `json:"result" db:"result"`
}

// Invoice carries the fields the engine needs to judge eligibility.
// Line items and transactions are loaded explicitly, never lazily.
type Invoice struct {
	ID           int64         `json:"id" db:"id"`
	CustomerID   int64         `json:"customer_id" db:"customer_id"`
	MerchantID   int64         `json:"merchant_id" db:"merchant_id"`
	Status       InvoiceStatus `json:"status" db:"status"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// LineItemRow is one invoice line item joined with its invoice, the atomic
// unit of revenue computation. UnitPrice is the price captured at time of
// sale, not the item's live price.
type LineItemRow struct {
	InvoiceID  int64
	MerchantID int64
	ItemID     int64
	CreatedAt  time.Time
	Quantity   int64
	UnitPrice  decimal.Decimal
}

// Total returns quantity * unit_price for the row.
func (r LineItemRow) Total() decimal.Decimal {
	return decimal.NewFromInt(r.Quantity).Mul(r.UnitPrice)
}

// MerchantRevenue is one ranked merchant result.
type MerchantRevenue struct {
	MerchantID int64           `json:"merchant_id"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ItemRevenue is one ranked item result.
type ItemRevenue struct {
	ItemID  int64           `json:"item_id"`
	Revenue decimal.Decimal `json:"revenue"`
}

// InvoiceRevenue is one ranked invoice result; for the unshipped report the
// amount is the revenue the invoice would realize on shipment.
type InvoiceRevenue struct {
	InvoiceID int64           `json:"invoice_id"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// WeekRevenue is one calendar-week bucket, keyed by its Monday start date.
type WeekRevenue struct {
	WeekStart time.Time       `json:"week_start"`
	Revenue   decimal.Decimal `json:"revenue"`
}
