package appointment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salon/internal/finance"
	"github.com/MrJamesThe3rd/salon/internal/http/response"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type Handler struct {
	svc *salon.Service
}

func NewHandler(svc *salon.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/day/{date}", h.day)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse(salon.DateLayout, date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		response.JSON(w, http.StatusOK, toResponseList(h.svc.AppointmentsOn(date)))

		return
	}

	response.JSON(w, http.StatusOK, toResponseList(h.svc.Appointments()))
}

func (h *Handler) day(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse(salon.DateLayout, date); err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	appts := h.svc.AppointmentsOn(date)

	response.JSON(w, http.StatusOK, dayResponse{
		Date:         date,
		Total:        finance.DailyTotal(appts, date),
		Appointments: toResponseList(appts),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.Appointment(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(*a))
}

type createAppointmentRequest struct {
	ClientID     string       `json:"client_id"`
	ProcedureIDs []string     `json:"procedure_ids"`
	Date         string       `json:"date"`
	Time         string       `json:"time"`
	Price        *salon.Money `json:"price,omitempty"`
	Notes        string       `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.AddAppointment(r.Context(), salon.AppointmentParams{
		ClientID:     req.ClientID,
		ProcedureIDs: req.ProcedureIDs,
		Date:         req.Date,
		Time:         req.Time,
		Price:        req.Price,
		Notes:        req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(*a))
}

type updateStatusRequest struct {
	Status salon.Status `json:"status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		response.Error(w, err)
		return
	}

	a, err := h.svc.Appointment(id)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(*a))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAppointment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
