package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lehigh-university-libraries/proofreader/internal/info"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

type indexResponse struct {
	Resource     *resource.ScanResource `json:"resource"`
	DisplayWidth int                    `json:"display_width,omitempty"`
	HasPageList  bool                   `json:"has_pagelist"`
}

// HandleGetIndex serves GET /api/indexes/{name}
func (h *Handler) HandleGetIndex(w http.ResponseWriter, r *http.Request) {
	scan, err := h.resolver.ResolveForIndex(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	response := indexResponse{Resource: scan}
	if h.indexes != nil {
		index, err := h.indexes.FindIndex(r.Context(), scan.Name)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		if index != nil {
			response.DisplayWidth = index.DisplayWidth
			response.HasPageList = index.PageList != nil
		}
	}
	h.writeJSON(w, response)
}

// HandleGetIndexPages serves GET /api/indexes/{name}/pages?lang=
func (h *Handler) HandleGetIndexPages(w http.ResponseWriter, r *http.Request) {
	l, err := h.language(r)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	pages, err := h.viewer.Pages(r.Context(), chi.URLParam(r, "name"), l)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, pages)
}

// HandleProofreadInfo serves GET /api/proofreadinfo?prop=namespaces|qualitylevels
func (h *Handler) HandleProofreadInfo(w http.ResponseWriter, r *http.Request) {
	result, err := h.info.Query(info.ParseProps(r.URL.Query().Get("prop")))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, map[string]any{"query": map[string]any{"proofreadinfo": result}})
}
