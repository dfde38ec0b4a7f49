package revenue

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers revenue report endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	limiter := httprate.Limit(30, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)

	r.Route("/revenue", func(r chi.Router) {
		r.Get("/", h.RangeRevenue)
		r.Get("/weekly", h.Weekly)
		r.Get("/merchants/{id}", h.MerchantRevenue)
		// Full-table rankings are the heaviest queries; keep them behind a
		// tighter limiter.
		r.Group(func(gr chi.Router) {
			gr.Use(limiter)
			gr.Get("/merchants", h.TopMerchants)
			gr.Get("/items", h.TopItems)
			gr.Get("/unshipped", h.Unshipped)
		})
	})
}
