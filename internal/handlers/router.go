package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API routes of h.
func NewRouter(h *Handler, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/proofreadinfo", h.HandleProofreadInfo)
		r.Get("/page", h.HandleGetPage)
		r.Put("/page", h.HandlePutPage)
		r.Route("/indexes/{name}", func(r chi.Router) {
			r.Get("/", h.HandleGetIndex)
			r.Get("/pages", h.HandleGetIndexPages)
		})
	})

	return r
}
