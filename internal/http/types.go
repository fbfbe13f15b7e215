package httphandler

import (
	"github.com/benbjohnson/clock"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"cookie4/internal/game"
	"cookie4/internal/metrics"
)

const tracerName = "cookie4/board"

// Handler serves the board verbs over one board service
type Handler struct {
	board  *game.Service
	logger *log.Logger
	tracer trace.Tracer
}

// NewHandler creates the board handlers
func NewHandler(board *game.Service, logger *log.Logger) *Handler {
	return &Handler{
		board:  board,
		logger: logger.WithPrefix("http"),
		tracer: otel.Tracer(tracerName),
	}
}

// RouterOptions carries the optional pieces the router wires in
type RouterOptions struct {
	Logger   *log.Logger
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}
