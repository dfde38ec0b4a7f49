package catalog

import "github.com/shopspring/decimal"

// ListRequest selects one page of a plain listing.
type ListRequest struct {
	Page    int `validate:"gte=1"`
	PerPage int `validate:"gte=1,lte=100"`
}

// FindItemsRequest searches items either by name fragment or by price range.
// Combining the name filter with either price bound is rejected.
type FindItemsRequest struct {
	Name     string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}
