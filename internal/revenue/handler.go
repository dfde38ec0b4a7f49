package revenue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

// ReportService defines the aggregation contract used by the handler.
type ReportService interface {
	MerchantRevenue(ctx context.Context, merchantID int64) (decimal.Decimal, error)
	TopMerchants(ctx context.Context, limit int) ([]MerchantRevenue, error)
	TopItems(ctx context.Context, limit int) ([]ItemRevenue, error)
	RevenueInRange(ctx context.Context, start, end string) (decimal.Decimal, error)
	UnshippedPotential(ctx context.Context, limit int) ([]InvoiceRevenue, error)
	WeeklyRevenue(ctx context.Context) ([]WeekRevenue, error)
}

// Handler coordinates HTTP requests for the revenue reports.
type Handler struct {
	logger           *slog.Logger
	service          ReportService
	defaultItemLimit int
}

// NewHandler constructs the revenue HTTP handler. defaultItemLimit is the
// explicit ranking size used when the item report omits a quantity.
func NewHandler(logger *slog.Logger, service ReportService, defaultItemLimit int) *Handler {
	return &Handler{logger: logger, service: service, defaultItemLimit: defaultItemLimit}
}

type scalarRevenueResponse struct {
	Revenue json.Number `json:"revenue"`
}

type merchantRevenueResponse struct {
	MerchantID int64       `json:"merchant_id"`
	Revenue    json.Number `json:"revenue"`
}

type itemRevenueResponse struct {
	ItemID  int64       `json:"item_id"`
	Revenue json.Number `json:"revenue"`
}

type invoiceRevenueResponse struct {
	InvoiceID        int64       `json:"invoice_id"`
	PotentialRevenue json.Number `json:"potential_revenue"`
}

type weekRevenueResponse struct {
	Week    string      `json:"week"`
	Revenue json.Number `json:"revenue"`
}

// MerchantRevenue handles GET /revenue/merchants/{id}.
func (h *Handler) MerchantRevenue(w http.ResponseWriter, r *http.Request) {
	merchantID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Argument", "merchant id must be an integer")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	total, err := h.service.MerchantRevenue(ctx, merchantID)
	if err != nil {
		h.respondError(w, "merchant revenue", err)
		return
	}
	httpx.JSON(w, http.StatusOK, merchantRevenueResponse{MerchantID: merchantID, Revenue: money(total)})
}

// TopMerchants handles GET /revenue/merchants?quantity=N.
func (h *Handler) TopMerchants(w http.ResponseWriter, r *http.Request) {
	limit, err := requiredQuantity(r)
	if err != nil {
		h.respondError(w, "top merchants", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ranked, err := h.service.TopMerchants(ctx, limit)
	if err != nil {
		h.respondError(w, "top merchants", err)
		return
	}
	out := make([]merchantRevenueResponse, len(ranked))
	for i, m := range ranked {
		out[i] = merchantRevenueResponse{MerchantID: m.MerchantID, Revenue: money(m.Revenue)}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// TopItems handles GET /revenue/items?quantity=N, falling back to the
// configured default when quantity is absent.
func (h *Handler) TopItems(w http.ResponseWriter, r *http.Request) {
	limit, ok, err := optionalQuantity(r)
	if err != nil {
		h.respondError(w, "top items", err)
		return
	}
	if !ok {
		limit = h.defaultItemLimit
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ranked, err := h.service.TopItems(ctx, limit)
	if err != nil {
		h.respondError(w, "top items", err)
		return
	}
	out := make([]itemRevenueResponse, len(ranked))
	for i, it := range ranked {
		out[i] = itemRevenueResponse{ItemID: it.ItemID, Revenue: money(it.Revenue)}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// RangeRevenue handles GET /revenue?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) RangeRevenue(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	total, err := h.service.RevenueInRange(ctx, start, end)
	if err != nil {
		h.respondError(w, "range revenue", err)
		return
	}
	httpx.JSON(w, http.StatusOK, scalarRevenueResponse{Revenue: money(total)})
}

// Unshipped handles GET /revenue/unshipped?quantity=N.
func (h *Handler) Unshipped(w http.ResponseWriter, r *http.Request) {
	limit, err := requiredQuantity(r)
	if err != nil {
		h.respondError(w, "unshipped potential", err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ranked, err := h.service.UnshippedPotential(ctx, limit)
	if err != nil {
		h.respondError(w, "unshipped potential", err)
		return
	}
	out := make([]invoiceRevenueResponse, len(ranked))
	for i, inv := range ranked {
		out[i] = invoiceRevenueResponse{InvoiceID: inv.InvoiceID, PotentialRevenue: money(inv.Revenue)}
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Weekly handles GET /revenue/weekly.
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	weeks, err := h.service.WeeklyRevenue(ctx)
	if err != nil {
		h.respondError(w, "weekly revenue", err)
		return
	}
	out := make([]weekRevenueResponse, len(weeks))
	for i, wk := range weeks {
		out[i] = weekRevenueResponse{Week: wk.WeekStart.Format(dateLayout), Revenue: money(wk.Revenue)}
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !errors.Is(err, httpx.ErrNotFound) && !errors.Is(err, httpx.ErrInvalidArgument) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

// money renders a decimal as a bare JSON number with two-decimal precision.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func requiredQuantity(r *http.Request) (int, error) {
	limit, ok, err := optionalQuantity(r)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("quantity is required: %w", httpx.ErrInvalidArgument)
	}
	return limit, nil
}

func optionalQuantity(r *http.Request) (int, bool, error) {
	raw := r.URL.Query().Get("quantity")
	if raw == "" {
		return 0, false, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("quantity %q: %w", raw, httpx.ErrInvalidArgument)
	}
	return limit, true, nil
}

// requestTimeout caps a single aggregation call; the store's own execution
// limits still apply underneath.
const requestTimeout = 2 * time.Second
