package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "autoseo/internal/api/middleware"
	"autoseo/internal/api/response"
)

// Dependencies holds all handler dependencies for the router.
type Dependencies struct {
	Health            http.HandlerFunc
	StartRun          http.HandlerFunc
	RunStatus         http.HandlerFunc
	ResetRun          http.HandlerFunc
	ExportSpreadsheet http.HandlerFunc
	ExportShopify     http.HandlerFunc
	WorkflowTemplate  http.HandlerFunc
}

// NewRouter builds the chi router with the middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.Health))

	r.Post("/api/v1/runs", orNotImplemented(deps.StartRun))
	r.Get("/api/v1/runs/current", orNotImplemented(deps.RunStatus))
	r.Delete("/api/v1/runs/current", orNotImplemented(deps.ResetRun))

	r.Get("/api/v1/runs/current/export", orNotImplemented(deps.ExportSpreadsheet))
	r.Get("/api/v1/runs/current/export/shopify", orNotImplemented(deps.ExportShopify))

	r.Get("/api/v1/workflow/template", orNotImplemented(deps.WorkflowTemplate))

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
