package ui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"maragu.dev/gomponents"

	candidateService "github.com/zhouzirui/candidate-desk/backend/internal/service/candidate"
)

// Handler serves the server-rendered candidate table.
type Handler struct {
	svc    *candidateService.Service
	logger *zap.Logger
}

// New creates the UI handler.
func New(svc *candidateService.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

// MountRoutes registers the page and its form endpoint on r.
func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Index)
	r.Post("/candidates/{id}/status", h.UpdateStatus)
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// Index renders stats, filters and either one page of candidates or search results.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	values := r.URL.Query()

	query, err := h.svc.ParsePageQuery(values)
	if err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "Unknown status filter."))
		return
	}

	view := indexView{
		Stats:        h.svc.Stats(ctx),
		Search:       strings.TrimSpace(values.Get("q")),
		StatusFilter: string(query.Status),
		DomainFilter: query.Domain,
		ReturnTo:     values.Encode(),
	}

	if result, err := h.svc.Search(ctx, view.Search); err == nil {
		view.Candidates = result.Data
	} else {
		page := h.svc.List(ctx, query)
		view.Candidates = page.Data
		view.Pagination = &page.Pagination
		view.PageLimit = query.Limit
	}

	renderHTML(w, http.StatusOK, indexPage(view))
}

// UpdateStatus handles the row action buttons and redirects back to the table.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "The form could not be read."))
		return
	}

	_, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), r.PostForm.Get("status"))
	switch {
	case errors.Is(err, candidateService.ErrCandidateNotFound):
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", "Candidate not found."))
		return
	case errors.Is(err, candidateService.ErrInvalidStatus):
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Request", "Status must be pending, selected, or rejected."))
		return
	case err != nil:
		h.logger.Error("ui status update failed", zap.Error(err))
		renderHTML(w, http.StatusInternalServerError, errorPage("Unexpected Error", "An unexpected error occurred."))
		return
	}

	target := "/"
	if back, err := url.ParseQuery(r.PostForm.Get("return")); err == nil && len(back) > 0 {
		target += "?" + back.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
