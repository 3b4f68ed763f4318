package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes wires every route under /api, attaching the bearer check to
// admin-only groups. Read routes on projects and the contact form are public.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/health", healthCheck())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthCheck())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())
			r.Get("/admin-profile", handlers.authHandler.adminProfile())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/verify", handlers.authHandler.verify())
				r.Get("/me", handlers.authHandler.me())
				r.Put("/profile", handlers.authHandler.updateProfile())
				r.Post("/logout", handlers.authHandler.logout())
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.list())
			r.Get("/featured", handlers.projectHandler.featured())
			r.Get("/{projectID}", handlers.projectHandler.getByID())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.projectHandler.create())
				r.Put("/{projectID}", handlers.projectHandler.update())
				r.Delete("/{projectID}", handlers.projectHandler.delete())
				r.Patch("/{projectID}/feature", handlers.projectHandler.toggleFeatured())
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", handlers.contactHandler.create())

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/", handlers.contactHandler.list())
				r.Patch("/{contactID}/read", handlers.contactHandler.markRead())
				r.Delete("/{contactID}", handlers.contactHandler.delete())
			})
		})
	})

	r.NotFound(notFound())
}

func healthCheck() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "health").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusOK, messageResponse{
			Success: true,
			Message: "Server is running",
		})
	}
}

func notFound() http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "notFound").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, http.StatusNotFound, errorResponse{
			Success: false,
			Message: "Route not found",
		})
	}
}
