package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mddrop/internal/handlers"
	"mddrop/internal/service"
	"mddrop/internal/workspace"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	DropService service.DropService
	Workspaces  *workspace.Manager
	DB          handlers.Pinger
	DropEnabled bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	dropHandler := handlers.NewDropHandler(deps.DropService)
	workspaceHandler := handlers.NewWorkspaceHandler(deps.Workspaces)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.DropEnabled)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)

		r.Get("/workspaces", workspaceHandler.List)
		r.Post("/workspaces", workspaceHandler.Create)
		r.Route("/workspaces/{name}", func(r chi.Router) {
			r.Put("/roots", workspaceHandler.SetRoots)
			r.Put("/composites", workspaceHandler.OpenComposite)
			r.Delete("/composites", workspaceHandler.CloseComposite)
			r.Method(http.MethodPost, "/drop", dropHandler)
		})
	})

	return r
}
