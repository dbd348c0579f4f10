// internal/circulation/handler.go
package circulation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the loan endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleBorrow)
	r.Get("/", h.HandleList)
	r.Get("/active", h.HandleListActive)
	r.Get("/{id}", h.HandleGet)
	r.Post("/{id}/return", h.HandleReturn)
	return r
}

func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PersonID    int64 `json:"person_id"`
		MediaItemID int64 `json:"media_item_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := h.service.Borrow(r.Context(), req.PersonID, req.MediaItemID)
	if err != nil {
		http.Error(w, err.Error(), StatusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, loan)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid loan ID", http.StatusBadRequest)
		return
	}

	loan, ok := h.service.Return(r.Context(), id)
	if !ok {
		http.Error(w, "loan not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, loan)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List(r.Context()))
}

func (h *Handler) HandleListActive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListActive(r.Context()))
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid loan ID", http.StatusBadRequest)
		return
	}

	loan, ok := h.service.FindByID(r.Context(), id)
	if !ok {
		http.Error(w, "loan not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, loan)
}

// StatusFor maps borrow failures to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnavailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
