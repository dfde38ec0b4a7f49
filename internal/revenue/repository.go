package revenue

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

// RowFilter narrows the eligible line-item selection.
type RowFilter struct {
	MerchantID *int64
	Window     *Window
}

// Repository provides PostgreSQL backed reads for the aggregation engine.
// It never mutates the entity store.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EligibleLineItems returns one row per invoice line item whose invoice
// passes the revenue predicate for the mode. Eligibility is checked with an
// EXISTS subquery over transactions instead of a join, so an invoice with
// several successful transactions never multiplies its line items.
func (r *Repository) EligibleLineItems(ctx context.Context, mode Mode, filter RowFilter) ([]LineItemRow, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT ii.invoice_id, inv.merchant_id, ii.item_id, inv.created_at,
		       ii.quantity, ii.unit_price::text
		FROM invoice_items ii
		JOIN invoices inv ON inv.id = ii.invoice_id
		WHERE inv.status = $1
		  AND EXISTS (
		        SELECT 1 FROM transactions t
		        WHERE t.invoice_id = inv.id AND t.result = 'success'
		  )`)
	args := []interface{}{string(mode.Status())}

	if filter.MerchantID != nil {
		args = append(args, *filter.MerchantID)
		fmt.Fprintf(&sb, " AND inv.merchant_id = $%d", len(args))
	}
	if filter.Window != nil {
		args = append(args, filter.Window.Start)
		fmt.Fprintf(&sb, " AND inv.created_at >= $%d", len(args))
		args = append(args, filter.Window.End)
		fmt.Fprintf(&sb, " AND inv.created_at <= $%d", len(args))
	}
	sb.WriteString(" ORDER BY ii.id")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query eligible line items: %w: %w", httpx.ErrUnavailable, err)
	}
	defer rows.Close()

	var result []LineItemRow
	for rows.Next() {
		var row LineItemRow
		var unitPrice string
		if err := rows.Scan(&row.InvoiceID, &row.MerchantID, &row.ItemID, &row.CreatedAt, &row.Quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("scan line item row: %w", err)
		}
		row.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", unitPrice, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read eligible line items: %w: %w", httpx.ErrUnavailable, err)
	}
	return result, nil
}

// MerchantExists reports whether the merchant id is present in the store.
func (r *Repository) MerchantExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM merchants WHERE id = $1)", id)
}

// ItemExists reports whether the item id is present in the store.
func (r *Repository) ItemExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, "SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)", id)
}

func (r *Repository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var ok bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("existence check: %w: %w", httpx.ErrUnavailable, err)
	}
	return ok, nil
}
