package revenue

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

// Store is the read-only query surface the engine consumes.
type Store interface {
	EligibleLineItems(ctx context.Context, mode Mode, filter RowFilter) ([]LineItemRow, error)
	MerchantExists(ctx context.Context, id int64) (bool, error)
	ItemExists(ctx context.Context, id int64) (bool, error)
}

// Service coordinates revenue query execution with the cache layer. It is
// stateless between calls; concurrent requests do not block each other.
type Service struct {
	store Store
	cache *Cache
}

// NewService wires a Store with a Cache helper.
func NewService(store Store, cache *Cache) *Service {
	return &Service{store: store, cache: cache}
}

// MerchantRevenue returns the total realized revenue for one merchant.
// A merchant with no eligible invoices yields exactly zero; an unknown
// merchant id yields ErrNotFound.
func (s *Service) MerchantRevenue(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	ok, err := s.store.MerchantExists(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("merchant %d: %w", merchantID, httpx.ErrNotFound)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Realized, RowFilter{MerchantID: &merchantID})
		if err != nil {
			return nil, err
		}
		return SumRows(rows), nil
	}
	var total decimal.Decimal
	if err := s.fetch(ctx, keyMerchantRevenue(merchantID), &total, loader); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// TopMerchants ranks merchants descending by realized revenue.
func (s *Service) TopMerchants(ctx context.Context, limit int) ([]MerchantRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("merchant ranking limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Realized, RowFilter{})
		if err != nil {
			return nil, err
		}
		ranked, err := Rank(SumByKey(rows, byMerchant), limit)
		if err != nil {
			return nil, err
		}
		out := make([]MerchantRevenue, len(ranked))
		for i, g := range ranked {
			out[i] = MerchantRevenue{MerchantID: g.Key, Revenue: g.Revenue}
		}
		return out, nil
	}
	var ranked []MerchantRevenue
	if err := s.fetch(ctx, keyTopMerchants(limit), &ranked, loader); err != nil {
		return nil, err
	}
	return ranked, nil
}

// TopItems ranks items descending by realized revenue. The default limit for
// callers that omit one is injected at the handler, never assumed here.
func (s *Service) TopItems(ctx context.Context, limit int) ([]ItemRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("item ranking limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Realized, RowFilter{})
		if err != nil {
			return nil, err
		}
		ranked, err := Rank(SumByKey(rows, byItem), limit)
		if err != nil {
			return nil, err
		}
		out := make([]ItemRevenue, len(ranked))
		for i, g := range ranked {
			out[i] = ItemRevenue{ItemID: g.Key, Revenue: g.Revenue}
		}
		return out, nil
	}
	var ranked []ItemRevenue
	if err := s.fetch(ctx, keyTopItems(limit), &ranked, loader); err != nil {
		return nil, err
	}
	return ranked, nil
}

// RevenueInRange sums realized revenue for invoices created inside the
// inclusive [start, end] calendar-date window.
func (s *Service) RevenueInRange(ctx context.Context, start, end string) (decimal.Decimal, error) {
	window, err := ParseWindow(start, end)
	if err != nil {
		return decimal.Zero, err
	}
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Realized, RowFilter{Window: &window})
		if err != nil {
			return nil, err
		}
		return SumRows(rows), nil
	}
	var total decimal.Decimal
	if err := s.fetch(ctx, keyRange(window), &total, loader); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// UnshippedPotential ranks packaged invoices with successful payments by the
// revenue they would realize on shipment.
func (s *Service) UnshippedPotential(ctx context.Context, limit int) ([]InvoiceRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("unshipped ranking limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Potential, RowFilter{})
		if err != nil {
			return nil, err
		}
		ranked, err := Rank(SumByKey(rows, byInvoice), limit)
		if err != nil {
			return nil, err
		}
		out := make([]InvoiceRevenue, len(ranked))
		for i, g := range ranked {
			out[i] = InvoiceRevenue{InvoiceID: g.Key, Revenue: g.Revenue}
		}
		return out, nil
	}
	var ranked []InvoiceRevenue
	if err := s.fetch(ctx, keyUnshipped(limit), &ranked, loader); err != nil {
		return nil, err
	}
	return ranked, nil
}

// WeeklyRevenue returns realized revenue bucketed by Monday-aligned calendar
// week, ascending by week start.
func (s *Service) WeeklyRevenue(ctx context.Context) ([]WeekRevenue, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		rows, err := s.store.EligibleLineItems(ctx, Realized, RowFilter{})
		if err != nil {
			return nil, err
		}
		return SumByWeek(rows), nil
	}
	var weeks []WeekRevenue
	if err := s.fetch(ctx, keyWeekly(), &weeks, loader); err != nil {
		return nil, err
	}
	return weeks, nil
}

// fetch resolves a value through the cache; Cache methods degrade to a plain
// loader call when no Redis client is configured.
func (s *Service) fetch(ctx context.Context, keyBase string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, keyBase)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}
