package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"cookie4/internal/game"
)

// Reset empties the board and rewinds the random stream
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "board.reset")
	defer span.End()

	reply := h.board.Reset()
	writeText(w, http.StatusOK, reply.Text)
}

// Play drops a piece for the team in the path into the 1-based column in the path
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "board.place")
	defer span.End()

	rawTeam, rawCol := chi.URLParam(r, "team"), chi.URLParam(r, "column")
	span.SetAttributes(attribute.String("board.team", rawTeam), attribute.String("board.column", rawCol))

	team, err := game.ParseTeam(rawTeam)
	if err != nil {
		h.logger.Debug("rejected placement", "team", rawTeam, "column", rawCol, "err", err)
		writeText(w, http.StatusBadRequest, "")
		return
	}
	col, err := parseColumn(rawCol)
	if err != nil {
		h.logger.Debug("rejected placement", "team", rawTeam, "column", rawCol, "err", err)
		writeText(w, http.StatusBadRequest, "")
		return
	}

	reply, err := h.board.Place(team, col)
	status := statusFor(err)
	switch status {
	case http.StatusOK:
		span.SetAttributes(attribute.String("board.state", reply.Outcome.State.String()))
		writeText(w, status, reply.Text)
	case http.StatusBadRequest:
		writeText(w, status, "")
	case http.StatusServiceUnavailable:
		span.SetAttributes(attribute.String("board.rejected", err.Error()))
		writeText(w, status, reply.Text)
	default:
		h.logger.Error("placement failed", "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		writeText(w, status, http.StatusText(status))
	}
}
