package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogRouter(store Store) http.Handler {
	h := NewHandler(slog.Default(), NewService(store))
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListMerchantsDefaults(t *testing.T) {
	store := newMockStore()
	for i := int64(1); i <= 25; i++ {
		store.addMerchant(i, "Merchant")
	}
	rec := get(t, newCatalogRouter(store), "/merchants")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []Merchant `json:"data"`
		Meta struct {
			Page    int `json:"page"`
			PerPage int `json:"per_page"`
			Total   int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 20)
	assert.Equal(t, 1, body.Meta.Page)
	assert.Equal(t, 25, body.Meta.Total)
}

func TestListMerchantsRejectsBadPagination(t *testing.T) {
	router := newCatalogRouter(newMockStore())

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/merchants?page=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/merchants?per_page=1000").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/merchants?page=abc").Code)
}

func TestGetMerchantNotFound(t *testing.T) {
	rec := get(t, newCatalogRouter(newMockStore()), "/merchants/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFindMerchantBlankNameIsBadRequest(t *testing.T) {
	rec := get(t, newCatalogRouter(newMockStore()), "/merchants/find?name=")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindMerchantNoMatchIsEmptyPayload(t *testing.T) {
	store := newMockStore()
	store.addMerchant(1, "Willms and Sons")
	rec := get(t, newCatalogRouter(store), "/merchants/find?name=zzz")

	require.Equal(t, http.StatusOK, rec.Code)
	var body findMerchantResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.Data)
}

func TestFindItemsCombinedFiltersRejected(t *testing.T) {
	rec := get(t, newCatalogRouter(newMockStore()), "/items/find_all?name=widget&min_price=5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindItemsBadPrice(t *testing.T) {
	router := newCatalogRouter(newMockStore())

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/items/find_all?min_price=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/items/find_all?max_price=-3").Code)
}

func TestMerchantForItem(t *testing.T) {
	store := newMockStore()
	store.addMerchant(7, "Schroeder-Jerde")
	store.addItem(3, 7, "Widget", "12.00")
	rec := get(t, newCatalogRouter(store), "/items/3/merchant")

	require.Equal(t, http.StatusOK, rec.Code)
	var merchant Merchant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merchant))
	assert.Equal(t, int64(7), merchant.ID)
}
