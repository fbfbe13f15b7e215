package httphandler

import (
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

// ShowBoard renders the current board
func (h *Handler) ShowBoard(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "board.show")
	defer span.End()

	reply := h.board.Show()
	span.SetAttributes(attribute.String("board.state", reply.Outcome.State.String()))
	writeText(w, http.StatusOK, reply.Text)
}

// RandomBoard replaces the board with the next generated one
func (h *Handler) RandomBoard(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "board.random")
	defer span.End()

	reply := h.board.RandomBoard()
	span.SetAttributes(attribute.String("board.state", reply.Outcome.State.String()))
	writeText(w, http.StatusOK, reply.Text)
}
