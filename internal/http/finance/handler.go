package finance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salon/internal/finance"
	"github.com/MrJamesThe3rd/salon/internal/http/response"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type Handler struct {
	svc *salon.Service
	loc *time.Location
	now func() time.Time
}

func NewHandler(svc *salon.Service, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}

	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/procedures", h.procedures)
}

type monthResponse struct {
	Label string      `json:"label"`
	Year  int         `json:"year"`
	Month int         `json:"month"`
	Total salon.Money `json:"total"`
	Count int         `json:"count"`
}

type summaryResponse struct {
	Months       []monthResponse `json:"months"`
	Total        salon.Money     `json:"total"`
	Count        int             `json:"count"`
	CurrentMonth salon.Money     `json:"current_month"`
}

type procedureResponse struct {
	Name  string      `json:"name"`
	Total salon.Money `json:"total"`
	Count int         `json:"count"`
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	s := finance.Summarize(h.svc.Appointments(), h.now().In(h.loc))

	resp := summaryResponse{
		Months:       make([]monthResponse, 0, len(s.Months)),
		Total:        s.Total,
		Count:        s.Count,
		CurrentMonth: s.CurrentMonth,
	}

	for _, m := range s.Months {
		resp.Months = append(resp.Months, monthResponse{
			Label: m.Label(),
			Year:  m.Key.Year,
			Month: int(m.Key.Month),
			Total: m.Total,
			Count: m.Count,
		})
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) procedures(w http.ResponseWriter, _ *http.Request) {
	totals := finance.ByProcedure(h.svc.Appointments())

	resp := make([]procedureResponse, len(totals))
	for i, t := range totals {
		resp[i] = procedureResponse{Name: t.Name, Total: t.Total, Count: t.Count}
	}

	response.JSON(w, http.StatusOK, resp)
}
