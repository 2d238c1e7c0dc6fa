package procedure

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

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
	r.Get("/categories", h.categories)
	r.Patch("/{id}", h.update)
}

type procedureResponse struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    salon.Money `json:"price"`
}

func toResponse(p salon.Procedure) procedureResponse {
	return procedureResponse{ID: p.ID, Name: p.Name, Category: p.Category, Price: p.Price}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	procs := h.svc.Procedures()

	resp := make([]procedureResponse, len(procs))
	for i, p := range procs {
		resp[i] = toResponse(p)
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) categories(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, h.svc.Categories())
}

type createProcedureRequest struct {
	Name     string      `json:"name"`
	Category string      `json:"category"`
	Price    salon.Money `json:"price"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.AddProcedure(r.Context(), salon.ProcedureParams{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(*p))
}

type updateProcedureRequest struct {
	Name     *string      `json:"name,omitempty"`
	Category *string      `json:"category,omitempty"`
	Price    *salon.Money `json:"price,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateProcedureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.UpdateProcedure(r.Context(), chi.URLParam(r, "id"), salon.ProcedureUpdate{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(*p))
}
