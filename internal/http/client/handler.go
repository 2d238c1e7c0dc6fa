package client

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salon/internal/http/response"
	"github.com/MrJamesThe3rd/salon/internal/importer"
	"github.com/MrJamesThe3rd/salon/internal/salon"
)

type Handler struct {
	svc       *salon.Service
	importSvc *importer.Service
}

func NewHandler(svc *salon.Service, importSvc *importer.Service) *Handler {
	return &Handler{svc: svc, importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/import", h.importContacts)
	r.Get("/{id}", h.get)
	r.Get("/{id}/history", h.history)
}

type clientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type historyEntry struct {
	ID            string      `json:"id"`
	Date          string      `json:"date"`
	Time          string      `json:"time"`
	ProcedureName string      `json:"procedure_name"`
	Price         salon.Money `json:"price"`
}

type importResponse struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Clients  []clientResponse `json:"clients"`
}

func toResponse(c salon.Client) clientResponse {
	return clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(clients []salon.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toResponse(c)
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, toResponseList(h.svc.Clients(r.URL.Query().Get("q"))))
}

type createClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.AddClient(r.Context(), salon.ClientParams{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Notes: req.Notes,
	})
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, toResponse(*c))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Client(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, toResponse(*c))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ClientHistory(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}

	resp := make([]historyEntry, 0, len(appts))
	for _, a := range appts {
		resp = append(resp, historyEntry{
			ID:            a.ID,
			Date:          a.Date,
			Time:          a.Time,
			ProcedureName: a.ProcedureName,
			Price:         a.Price,
		})
	}

	response.JSON(w, http.StatusOK, resp)
}

func (h *Handler) importContacts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.importSvc.ImportContacts(r.Context(), importer.Format(r.FormValue("format")), file)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, importResponse{
		Imported: len(res.Added),
		Skipped:  res.Skipped,
		Clients:  toResponseList(res.Added),
	})
}
