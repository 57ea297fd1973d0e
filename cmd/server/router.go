package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasks-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasks-api/internal/api/middleware"
)

// setupRouter builds the router with every route and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	authHandler := api.NewAuthHandler(app.users, app.logger)
	taskHandler := api.NewTaskHandler(app.tasks, app.logger)
	suggestionHandler := api.NewSuggestionHandler(app.suggestions)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", authHandler.Routes)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Route("/tasks", taskHandler.Routes)
			r.Post("/ai/suggest", suggestionHandler.Suggest)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
