package app

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/merx-commerce/merx/internal/observability"
)

// MiddlewareStack returns the shared middleware chain applied to every
// route, ordered outermost first.
func MiddlewareStack(cfg *Config, metrics *observability.Metrics) []func(http.Handler) http.Handler {
	secureMW := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		IsDevelopment:      !cfg.IsProduction(),
	})

	stack := []func(http.Handler) http.Handler{
		chimw.RealIP,
		chimw.RequestID,
		chimw.Recoverer,
		chimw.Timeout(cfg.AppRequestTimeout),
		secureMW.Handler,
		chimw.Compress(5),
		httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	}

	if metrics != nil {
		stack = append(stack, metrics.Middleware)
	}

	return stack
}
