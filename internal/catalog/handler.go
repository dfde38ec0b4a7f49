package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/merx-commerce/merx/internal/platform/httpx"
	"github.com/merx-commerce/merx/internal/shared"
)

// Handler coordinates HTTP requests for catalog listings and search.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs the catalog HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

type listResponse[T any] struct {
	Data []T               `json:"data"`
	Meta shared.Pagination `json:"meta"`
}

type findMerchantResponse struct {
	Data *Merchant `json:"data"`
}

// ListMerchants handles GET /merchants.
func (h *Handler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseListRequest(r)
	if err != nil {
		h.respondError(w, "list merchants", err)
		return
	}
	merchants, page, err := h.service.ListMerchants(r.Context(), req)
	if err != nil {
		h.respondError(w, "list merchants", err)
		return
	}
	if merchants == nil {
		merchants = []Merchant{}
	}
	httpx.JSON(w, http.StatusOK, listResponse[Merchant]{Data: merchants, Meta: page})
}

// GetMerchant handles GET /merchants/{id}.
func (h *Handler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, "get merchant", err)
		return
	}
	merchant, err := h.service.GetMerchant(r.Context(), id)
	if err != nil {
		h.respondError(w, "get merchant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, merchant)
}

// FindMerchant handles GET /merchants/find?name=. A fragment that matches
// nothing yields an empty payload, not a 404.
func (h *Handler) FindMerchant(w http.ResponseWriter, r *http.Request) {
	merchant, err := h.service.FindMerchant(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		if errorsIsNotFound(err) {
			httpx.JSON(w, http.StatusOK, findMerchantResponse{Data: nil})
			return
		}
		h.respondError(w, "find merchant", err)
		return
	}
	httpx.JSON(w, http.StatusOK, findMerchantResponse{Data: merchant})
}

// MerchantForItem handles GET /items/{id}/merchant.
func (h *Handler) MerchantForItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, "merchant for item", err)
		return
	}
	merchant, err := h.service.MerchantForItem(r.Context(), id)
	if err != nil {
		h.respondError(w, "merchant for item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, merchant)
}

// ListItems handles GET /items.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseListRequest(r)
	if err != nil {
		h.respondError(w, "list items", err)
		return
	}
	items, page, err := h.service.ListItems(r.Context(), req)
	if err != nil {
		h.respondError(w, "list items", err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.JSON(w, http.StatusOK, listResponse[Item]{Data: items, Meta: page})
}

// GetItem handles GET /items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, "get item", err)
		return
	}
	item, err := h.service.GetItem(r.Context(), id)
	if err != nil {
		h.respondError(w, "get item", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// FindItems handles GET /items/find_all.
func (h *Handler) FindItems(w http.ResponseWriter, r *http.Request) {
	req, err := parseFindItemsRequest(r)
	if err != nil {
		h.respondError(w, "find items", err)
		return
	}
	items, err := h.service.FindItems(r.Context(), req)
	if err != nil {
		h.respondError(w, "find items", err)
		return
	}
	if items == nil {
		items = []Item{}
	}
	httpx.JSON(w, http.StatusOK, struct {
		Data []Item `json:"data"`
	}{Data: items})
}

func (h *Handler) parseListRequest(r *http.Request) (ListRequest, error) {
	req := ListRequest{Page: 1, PerPage: shared.DefaultPerPage}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return ListRequest{}, fmt.Errorf("page %q: %w", raw, httpx.ErrInvalidArgument)
		}
		req.Page = page
	}
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return ListRequest{}, fmt.Errorf("per_page %q: %w", raw, httpx.ErrInvalidArgument)
		}
		req.PerPage = perPage
	}
	if err := h.validator.Struct(req); err != nil {
		return ListRequest{}, fmt.Errorf("pagination out of bounds: %w", httpx.ErrInvalidArgument)
	}
	return req, nil
}

func parseFindItemsRequest(r *http.Request) (FindItemsRequest, error) {
	req := FindItemsRequest{Name: r.URL.Query().Get("name")}
	var err error
	if req.MinPrice, err = priceParam(r, "min_price"); err != nil {
		return FindItemsRequest{}, err
	}
	if req.MaxPrice, err = priceParam(r, "max_price"); err != nil {
		return FindItemsRequest{}, err
	}
	return req, nil
}

func priceParam(r *http.Request, key string) (*decimal.Decimal, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", key, raw, httpx.ErrInvalidArgument)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%s must not be negative: %w", key, httpx.ErrInvalidArgument)
	}
	return &price, nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer: %w", httpx.ErrInvalidArgument)
	}
	return id, nil
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !errorsIsNotFound(err) && !errors.Is(err, httpx.ErrInvalidArgument) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

func errorsIsNotFound(err error) bool {
	return errors.Is(err, httpx.ErrNotFound)
}
