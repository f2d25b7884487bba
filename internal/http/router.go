package http

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/tally/internal/http/category"
	"github.com/MrJamesThe3rd/tally/internal/http/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/export"
	"github.com/MrJamesThe3rd/tally/internal/http/health"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/matching"
	"github.com/MrJamesThe3rd/tally/internal/http/recurring"
)

type Options struct {
	AllowedOrigins []string
	RateLimit      rate.Limit
	RateBurst      int
	// Sentry reports panics to the hub configured by sentry.Init.
	Sentry bool
}

type Handlers struct {
	Expenses   *expense.Handler
	Import     *importcsv.Handler
	Export     *export.Handler
	Categories *category.Handler
	Recurring  *recurring.Handler
	Matching   *matching.Handler
	Health     *health.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Sentry {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if opts.RateLimit > 0 {
		router.Use(RateLimit(rate.NewLimiter(opts.RateLimit, opts.RateBurst)))
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Expenses.Routes(r)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Categories.Routes(r)
		})

		r.Route("/recurring-expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Recurring.Routes(r)
		})

		r.Route("/matching", h.Matching.Routes)
		r.Route("/health", h.Health.Routes)
	})

	return router
}
