package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes mounts the public, account and resource routes. Writes are
// admin-only; reads are open to both roles.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.NotFound(handlers.healthHandler.routeNotFound())
	r.MethodNotAllowed(handlers.healthHandler.routeNotFound())

	r.Get("/health", handlers.healthHandler.health())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.authHandler.signup())
			r.Post("/login", handlers.authHandler.login())
			r.With(authMiddleware.authenticate).Get("/profile", handlers.authHandler.getProfile())
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.With(authMiddleware.adminOnly()).Post("/", handlers.clientHandler.addClient())
			r.With(authMiddleware.userAndAdmin()).Get("/", handlers.clientHandler.getClients())
			r.With(authMiddleware.userAndAdmin()).Get("/{id}", handlers.clientHandler.getClient())
			r.With(authMiddleware.adminOnly()).Put("/{id}", handlers.clientHandler.updateClient())
			r.With(authMiddleware.adminOnly()).Delete("/{id}", handlers.clientHandler.deleteClient())
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.With(authMiddleware.adminOnly()).Post("/", handlers.projectHandler.addProject())
			r.With(authMiddleware.userAndAdmin()).Get("/", handlers.projectHandler.getProjects())
			r.With(authMiddleware.userAndAdmin()).Get("/{id}", handlers.projectHandler.getProject())
			r.With(authMiddleware.adminOnly()).Put("/{id}", handlers.projectHandler.updateProject())
			r.With(authMiddleware.adminOnly()).Delete("/{id}", handlers.projectHandler.deleteProject())
		})
	})
}
