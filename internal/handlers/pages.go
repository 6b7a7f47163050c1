package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/proofreader/internal/models"
)

// HandleGetPage serves GET /api/page?title=&lang=
func (h *Handler) HandleGetPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	title := query.Get("title")
	if title == "" {
		h.writeError(w, "title is required", http.StatusBadRequest)
		return
	}

	l, err := h.language(r)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	view, err := h.viewer.View(r.Context(), title, l, h.actingUser(r))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, view)
}

// HandlePutPage serves PUT /api/page with a JSON edit body. The edit is
// made by the acting user, never by a user named in the body.
func (h *Handler) HandlePutPage(w http.ResponseWriter, r *http.Request) {
	var edit models.Edit
	if err := json.NewDecoder(r.Body).Decode(&edit); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if edit.Title == "" {
		h.writeError(w, "title is required", http.StatusBadRequest)
		return
	}
	edit.User = h.actingUser(r)

	record, err := h.editor.Submit(r.Context(), edit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, record)
}
