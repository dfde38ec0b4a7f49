package revenue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/merx-commerce/merx/internal/platform/httpx"
)

type stubService struct {
	merchantRevenue decimal.Decimal
	merchantErr     error
	topMerchants    []MerchantRevenue
	topItems        []ItemRevenue
	itemLimitSeen   int
	rangeRevenue    decimal.Decimal
	rangeErr        error
	unshipped       []InvoiceRevenue
	weekly          []WeekRevenue
}

func (s *stubService) MerchantRevenue(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	return s.merchantRevenue, s.merchantErr
}

func (s *stubService) TopMerchants(ctx context.Context, limit int) ([]MerchantRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	return s.topMerchants, nil
}

func (s *stubService) TopItems(ctx context.Context, limit int) ([]ItemRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	s.itemLimitSeen = limit
	return s.topItems, nil
}

func (s *stubService) RevenueInRange(ctx context.Context, start, end string) (decimal.Decimal, error) {
	return s.rangeRevenue, s.rangeErr
}

func (s *stubService) UnshippedPotential(ctx context.Context, limit int) ([]InvoiceRevenue, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit %d: %w", limit, httpx.ErrInvalidArgument)
	}
	return s.unshipped, nil
}

func (s *stubService) WeeklyRevenue(ctx context.Context) ([]WeekRevenue, error) {
	return s.weekly, nil
}

func newTestRouter(svc ReportService) http.Handler {
	h := NewHandler(slog.Default(), svc, 10)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func doRequest(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerMerchantRevenue(t *testing.T) {
	svc := &stubService{merchantRevenue: decimal.RequireFromString("75")}
	rec := doRequest(t, newTestRouter(svc), "/revenue/merchants/42")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		MerchantID int64       `json:"merchant_id"`
		Revenue    json.Number `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.MerchantID)
	assert.Equal(t, json.Number("75.00"), body.Revenue)
}

func TestHandlerMerchantRevenueNotFound(t *testing.T) {
	svc := &stubService{merchantErr: fmt.Errorf("merchant 12: %w", httpx.ErrNotFound)}
	rec := doRequest(t, newTestRouter(svc), "/revenue/merchants/12")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerMerchantRevenueBadID(t *testing.T) {
	rec := doRequest(t, newTestRouter(&stubService{}), "/revenue/merchants/abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerTopMerchantsRequiresQuantity(t *testing.T) {
	router := newTestRouter(&stubService{})

	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, "/revenue/merchants").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, "/revenue/merchants?quantity=0").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, "/revenue/merchants?quantity=-2").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(t, router, "/revenue/merchants?quantity=two").Code)
}

func TestHandlerTopItemsDefaultLimit(t *testing.T) {
	svc := &stubService{topItems: []ItemRevenue{{ItemID: 1, Revenue: decimal.RequireFromString("9.99")}}}
	rec := doRequest(t, newTestRouter(svc), "/revenue/items")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, svc.itemLimitSeen, "absent quantity must fall back to the configured default")
}

func TestHandlerTopItemsExplicitLimit(t *testing.T) {
	svc := &stubService{}
	rec := doRequest(t, newTestRouter(svc), "/revenue/items?quantity=3")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.itemLimitSeen)
}

func TestHandlerRangeRevenue(t *testing.T) {
	svc := &stubService{rangeRevenue: decimal.RequireFromString("475")}
	rec := doRequest(t, newTestRouter(svc), "/revenue?start=2021-06-01&end=2021-06-30")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Revenue json.Number `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, json.Number("475.00"), body.Revenue)
}

func TestHandlerRangeRevenueInvalidBounds(t *testing.T) {
	svc := &stubService{rangeErr: fmt.Errorf("start date: missing: %w", httpx.ErrInvalidArgument)}
	rec := doRequest(t, newTestRouter(svc), "/revenue?end=2021-06-30")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerUnshipped(t *testing.T) {
	svc := &stubService{unshipped: []InvoiceRevenue{{InvoiceID: 9, Revenue: decimal.RequireFromString("100")}}}
	rec := doRequest(t, newTestRouter(svc), "/revenue/unshipped?quantity=1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []struct {
		InvoiceID        int64       `json:"invoice_id"`
		PotentialRevenue json.Number `json:"potential_revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, int64(9), body[0].InvoiceID)
	assert.Equal(t, json.Number("100.00"), body[0].PotentialRevenue)
}

func TestHandlerWeekly(t *testing.T) {
	svc := &stubService{weekly: []WeekRevenue{
		{WeekStart: time.Date(2021, 6, 7, 0, 0, 0, 0, time.UTC), Revenue: decimal.RequireFromString("50")},
		{WeekStart: time.Date(2021, 6, 14, 0, 0, 0, 0, time.UTC), Revenue: decimal.RequireFromString("30")},
	}}
	rec := doRequest(t, newTestRouter(svc), "/revenue/weekly")

	require.Equal(t, http.StatusOK, rec.Code)
	var body []struct {
		Week    string      `json:"week"`
		Revenue json.Number `json:"revenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "2021-06-07", body[0].Week)
	assert.Equal(t, "2021-06-14", body[1].Week)
}

func TestHandlerStoreUnavailable(t *testing.T) {
	svc := &stubService{merchantErr: fmt.Errorf("query eligible line items: %w", httpx.ErrUnavailable)}
	rec := doRequest(t, newTestRouter(svc), "/revenue/merchants/1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
