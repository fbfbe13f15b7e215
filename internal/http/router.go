package httphandler

import (
	"io"
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the board verbs and the operational endpoints
func NewRouter(h *Handler, opts RouterOptions) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(accessLog(logger.WithPrefix("access"), clk, opts.Metrics))
	r.Use(middleware.Recoverer)

	// board verbs
	r.Route("/12", func(r chi.Router) {
		r.Get("/board", h.ShowBoard)
		r.Post("/reset", h.Reset)
		r.Post("/place/{team}/{column}", h.Play)
		r.Get("/random-board", h.RandomBoard)
	})

	// health and metrics
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "ok")
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.NotFound(NotFound)
	return r
}
