// Package catalog serves the merchant and item listings that surround the
// revenue engine: paginated indexes, lookups, and search.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Merchant owns items and invoices.
type Merchant struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Item is a sellable good. UnitPrice is the current list price; invoice line
// items keep their own copy of the price at time of sale.
type Item struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price" db:"unit_price"`
	MerchantID  int64           `json:"merchant_id" db:"merchant_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
