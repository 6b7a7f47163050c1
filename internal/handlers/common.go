package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/proofreader/internal/info"
	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/proofread"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
)

// DefaultUserHeader carries the acting user when Services.UserHeader is unset.
const DefaultUserHeader = "X-Remote-User"

type Handler struct {
	resolver    *resource.Resolver
	indexes     proofread.IndexLookup
	editor      *proofread.Editor
	viewer      *proofread.Viewer
	info        *info.Info
	languages   *lang.Registry
	defaultLang string
	userHeader  string
	groupsOf    func(name string) []string
}

// Services are the collaborators the HTTP API is served from.
type Services struct {
	Resolver        *resource.Resolver
	Indexes         proofread.IndexLookup
	Editor          *proofread.Editor
	Viewer          *proofread.Viewer
	Info            *info.Info
	Languages       *lang.Registry
	DefaultLanguage string

	// UserHeader is the header carrying the authenticated user name, set
	// by the fronting proxy. GroupsOf looks up that user's groups.
	UserHeader string
	GroupsOf   func(name string) []string
}

func New(s Services) *Handler {
	languages := s.Languages
	if languages == nil {
		languages, _ = lang.NewRegistry(nil)
	}
	userHeader := s.UserHeader
	if userHeader == "" {
		userHeader = DefaultUserHeader
	}
	groupsOf := s.GroupsOf
	if groupsOf == nil {
		groupsOf = func(string) []string { return nil }
	}
	return &Handler{
		resolver:    s.Resolver,
		indexes:     s.Indexes,
		editor:      s.Editor,
		viewer:      s.Viewer,
		info:        s.Info,
		languages:   languages,
		defaultLang: s.DefaultLanguage,
		userHeader:  userHeader,
		groupsOf:    groupsOf,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message)
	} else {
		slog.Debug(message, "status", code)
	}
	http.Error(w, message, code)
}

// writeServiceError maps a domain error onto an HTTP status.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	h.writeError(w, err.Error(), statusFor(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, resource.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, resource.ErrPageNumberNotFound),
		errors.Is(err, proofread.ErrInvalidContent),
		errors.Is(err, quality.ErrInvalidLevel),
		errors.Is(err, lang.ErrUnknownLanguage),
		errors.Is(err, info.ErrUnknownProp):
		return http.StatusBadRequest
	case errors.Is(err, quality.ErrTransitionRejected):
		return http.StatusForbidden
	case errors.Is(err, proofread.ErrEditConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// language returns the ?lang= language of a request, or the default.
func (h *Handler) language(r *http.Request) (lang.Language, error) {
	code := r.URL.Query().Get("lang")
	if code == "" {
		code = h.defaultLang
	}
	return h.languages.Lookup(code)
}

// actingUser is the user named by the trusted user header, with groups
// from the server side lookup. Without the header the user is anonymous.
func (h *Handler) actingUser(r *http.Request) quality.User {
	name := strings.TrimSpace(r.Header.Get(h.userHeader))
	if name == "" {
		return quality.User{}
	}
	return quality.User{Name: name, Groups: h.groupsOf(name)}
}
