package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

// Repository provides PostgreSQL backed reads for the catalog.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const merchantColumns = "id, name, created_at, updated_at"
const itemColumns = "id, name, description, unit_price::text, merchant_id, created_at, updated_at"

// ListMerchants returns one page of merchants ordered by id.
func (r *Repository) ListMerchants(ctx context.Context, limit, offset int) ([]Merchant, error) {
	query := fmt.Sprintf("SELECT %s FROM merchants ORDER BY id LIMIT $1 OFFSET $2", merchantColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list merchants: %w: %w", httpx.ErrUnavailable, err)
	}
	defer rows.Close()
	return scanMerchants(rows)
}

// CountMerchants returns the total number of merchants.
func (r *Repository) CountMerchants(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM merchants").Scan(&total); err != nil {
		return 0, fmt.Errorf("count merchants: %w: %w", httpx.ErrUnavailable, err)
	}
	return total, nil
}

// GetMerchant retrieves a merchant by id.
func (r *Repository) GetMerchant(ctx context.Context, id int64) (*Merchant, error) {
	query := fmt.Sprintf("SELECT %s FROM merchants WHERE id = $1", merchantColumns)
	var m Merchant
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("merchant %d: %w", id, httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("get merchant: %w: %w", httpx.ErrUnavailable, err)
	}
	return &m, nil
}

// FindMerchantByName returns the alphabetically first merchant whose name
// contains the fragment, case-insensitively.
func (r *Repository) FindMerchantByName(ctx context.Context, name string) (*Merchant, error) {
	query := fmt.Sprintf("SELECT %s FROM merchants WHERE name ILIKE $1 ORDER BY name ASC LIMIT 1", merchantColumns)
	var m Merchant
	err := r.pool.QueryRow(ctx, query, "%"+name+"%").Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("merchant named %q: %w", name, httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("find merchant: %w: %w", httpx.ErrUnavailable, err)
	}
	return &m, nil
}

// MerchantForItem resolves the merchant that owns an item.
func (r *Repository) MerchantForItem(ctx context.Context, itemID int64) (*Merchant, error) {
	query := `
		SELECT m.id, m.name, m.created_at, m.updated_at
		FROM merchants m
		JOIN items i ON i.merchant_id = m.id
		WHERE i.id = $1
	`
	var m Merchant
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("merchant for item: %w: %w", httpx.ErrUnavailable, err)
	}
	return &m, nil
}

// ListItems returns one page of items ordered by id.
func (r *Repository) ListItems(ctx context.Context, limit, offset int) ([]Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items ORDER BY id LIMIT $1 OFFSET $2", itemColumns)
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w: %w", httpx.ErrUnavailable, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// CountItems returns the total number of items.
func (r *Repository) CountItems(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM items").Scan(&total); err != nil {
		return 0, fmt.Errorf("count items: %w: %w", httpx.ErrUnavailable, err)
	}
	return total, nil
}

// GetItem retrieves an item by id.
func (r *Repository) GetItem(ctx context.Context, id int64) (*Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns)
	row := r.pool.QueryRow(ctx, query, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, httpx.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w: %w", httpx.ErrUnavailable, err)
	}
	return item, nil
}

// FindItemsByName returns items whose name contains the fragment,
// case-insensitively, ordered by name.
func (r *Repository) FindItemsByName(ctx context.Context, name string) ([]Item, error) {
	query := fmt.Sprintf("SELECT %s FROM items WHERE name ILIKE $1 ORDER BY name ASC", itemColumns)
	rows, err := r.pool.Query(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("find items by name: %w: %w", httpx.ErrUnavailable, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

// FindItemsByPrice returns items inside the inclusive price bounds; either
// bound may be nil for an open end.
func (r *Repository) FindItemsByPrice(ctx context.Context, minPrice, maxPrice *decimal.Decimal) ([]Item, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM items WHERE 1=1", itemColumns)
	var args []interface{}
	if minPrice != nil {
		args = append(args, minPrice.String())
		fmt.Fprintf(&sb, " AND unit_price >= $%d", len(args))
	}
	if maxPrice != nil {
		args = append(args, maxPrice.String())
		fmt.Fprintf(&sb, " AND unit_price <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY unit_price ASC, id ASC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find items by price: %w: %w", httpx.ErrUnavailable, err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanMerchants(rows pgx.Rows) ([]Merchant, error) {
	var merchants []Merchant
	for rows.Next() {
		var m Merchant
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan merchant: %w", err)
		}
		merchants = append(merchants, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read merchants: %w: %w", httpx.ErrUnavailable, err)
	}
	return merchants, nil
}

func scanItems(rows pgx.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w: %w", httpx.ErrUnavailable, err)
	}
	return items, nil
}

func scanItem(row pgx.Row) (*Item, error) {
	var item Item
	var unitPrice string
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &unitPrice, &item.MerchantID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, fmt.Errorf("parse unit price %q: %w", unitPrice, err)
	}
	item.UnitPrice = price
	return &item, nil
}
