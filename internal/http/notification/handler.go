package notification

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salon/internal/alert"
	"github.com/MrJamesThe3rd/salon/internal/http/response"
)

type Handler struct {
	gate     *alert.Gate
	offsets  []int
	interval time.Duration
}

func NewHandler(gate *alert.Gate, offsets []int, interval time.Duration) *Handler {
	return &Handler{gate: gate, offsets: offsets, interval: interval}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.status)
	r.Post("/permission", h.grant)
	r.Delete("/permission", h.revoke)
}

type statusResponse struct {
	Permitted       bool     `json:"permitted"`
	Sinks           []string `json:"sinks"`
	Offsets         []int    `json:"offsets"`
	IntervalSeconds float64  `json:"interval_seconds"`
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, h.statusResponse())
}

func (h *Handler) grant(w http.ResponseWriter, _ *http.Request) {
	h.gate.Grant()
	response.JSON(w, http.StatusOK, h.statusResponse())
}

func (h *Handler) revoke(w http.ResponseWriter, _ *http.Request) {
	h.gate.Revoke()
	response.JSON(w, http.StatusOK, h.statusResponse())
}

func (h *Handler) statusResponse() statusResponse {
	return statusResponse{
		Permitted:       h.gate.Permitted(),
		Sinks:           h.gate.Sinks(),
		Offsets:         h.offsets,
		IntervalSeconds: h.interval.Seconds(),
	}
}
