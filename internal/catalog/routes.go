package catalog

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers catalog endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/merchants", func(r chi.Router) {
		r.Get("/", h.ListMerchants)
		r.Get("/find", h.FindMerchant)
		r.Get("/{id}", h.GetMerchant)
	})
	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.ListItems)
		r.Get("/find_all", h.FindItems)
		r.Get("/{id}", h.GetItem)
		r.Get("/{id}/merchant", h.MerchantForItem)
	})
}
