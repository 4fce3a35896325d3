package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/userdesk/userdesk/internal/config"
	"github.com/userdesk/userdesk/internal/handlers"
	"github.com/userdesk/userdesk/internal/middleware"
)

// RegisterRoutes registers all application routes. The /search and /list
// segments are static so chi matches them ahead of the {id} parameter.
func RegisterRoutes(router chi.Router, userHandler *handlers.UserHandler, authCfg config.AuthConfig) {
	router.Route("/api/v1/users", func(r chi.Router) {
		if authCfg.Required {
			r.Use(middleware.RequireAPIKey(authCfg.APIKey))
		}

		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.FetchUsers)
		r.Get("/search", userHandler.SearchUsers)
		r.Get("/list", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}

// RegisterStatic serves files from dir at the router root so the admin UI
// bundle can ride alongside the API.
func RegisterStatic(router chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	router.Handle("/*", fs)
}
