package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
	"github.com/merx-commerce/merx/internal/shared"
)

// Store is the read surface the catalog service consumes.
type Store interface {
	ListMerchants(ctx context.Context, limit, offset int) ([]Merchant, error)
	CountMerchants(ctx context.Context) (int, error)
	GetMerchant(ctx context.Context, id int64) (*Merchant, error)
	FindMerchantByName(ctx context.Context, name string) (*Merchant, error)
	MerchantForItem(ctx context.Context, itemID int64) (*Merchant, error)
	ListItems(ctx context.Context, limit, offset int) ([]Item, error)
	CountItems(ctx context.Context) (int, error)
	GetItem(ctx context.Context, id int64) (*Item, error)
	FindItemsByName(ctx context.Context, name string) ([]Item, error)
	FindItemsByPrice(ctx context.Context, minPrice, maxPrice *decimal.Decimal) ([]Item, error)
}

// Service answers catalog queries.
type Service struct {
	store Store
}

// NewService constructs a Service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListMerchants returns one page of merchants with pagination metadata.
func (s *Service) ListMerchants(ctx context.Context, req ListRequest) ([]Merchant, shared.Pagination, error) {
	total, err := s.store.CountMerchants(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	page := shared.NewPagination(req.Page, req.PerPage, total)
	merchants, err := s.store.ListMerchants(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return merchants, page, nil
}

// GetMerchant resolves a merchant by id.
func (s *Service) GetMerchant(ctx context.Context, id int64) (*Merchant, error) {
	return s.store.GetMerchant(ctx, id)
}

// FindMerchant resolves the first merchant matching a name fragment.
func (s *Service) FindMerchant(ctx context.Context, name string) (*Merchant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("merchant name is required: %w", httpx.ErrInvalidArgument)
	}
	return s.store.FindMerchantByName(ctx, name)
}

// MerchantForItem resolves the merchant owning an item.
func (s *Service) MerchantForItem(ctx context.Context, itemID int64) (*Merchant, error) {
	return s.store.MerchantForItem(ctx, itemID)
}

// ListItems returns one page of items with pagination metadata.
func (s *Service) ListItems(ctx context.Context, req ListRequest) ([]Item, shared.Pagination, error) {
	total, err := s.store.CountItems(ctx)
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	page := shared.NewPagination(req.Page, req.PerPage, total)
	items, err := s.store.ListItems(ctx, page.PerPage, page.Offset())
	if err != nil {
		return nil, shared.Pagination{}, err
	}
	return items, page, nil
}

// GetItem resolves an item by id.
func (s *Service) GetItem(ctx context.Context, id int64) (*Item, error) {
	return s.store.GetItem(ctx, id)
}

// FindItems searches items by name fragment or price range. The two filter
// families are mutually exclusive.
func (s *Service) FindItems(ctx context.Context, req FindItemsRequest) ([]Item, error) {
	hasName := strings.TrimSpace(req.Name) != ""
	hasPrice := req.MinPrice != nil || req.MaxPrice != nil
	if hasName && hasPrice {
		return nil, fmt.Errorf("name and price filters are mutually exclusive: %w", httpx.ErrInvalidArgument)
	}
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, fmt.Errorf("min price exceeds max price: %w", httpx.ErrInvalidArgument)
	}
	if hasName {
		return s.store.FindItemsByName(ctx, req.Name)
	}
	return s.store.FindItemsByPrice(ctx, req.MinPrice, req.MaxPrice)
}
