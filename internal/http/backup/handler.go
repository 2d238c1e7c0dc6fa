package backup

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/salon/internal/backup"
	"github.com/MrJamesThe3rd/salon/internal/http/response"
)

const maxUpload = 64 << 20

type Handler struct {
	svc *backup.Service
	now func() time.Time
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Post("/", h.restore)
}

type restoreResponse struct {
	Clients      int `json:"clients"`
	Procedures   int `json:"procedures"`
	Appointments int `json:"appointments"`
}

func (h *Handler) download(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.Export(&buf); err != nil {
		response.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName(h.now())))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write backup", "error", err)
	}
}

// restore accepts the backup either as the raw request body or as the "file"
// field of a multipart form.
func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	var src io.Reader = http.MaxBytesReader(w, r.Body, maxUpload)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file field is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		src = file
	}

	doc, err := h.svc.Restore(r.Context(), src)
	if err != nil {
		response.Error(w, err)
		return
	}

	response.JSON(w, http.StatusOK, restoreResponse{
		Clients:      len(doc.Clients),
		Procedures:   len(doc.Procedures),
		Appointments: len(doc.Appointments),
	})
}
