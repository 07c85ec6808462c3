package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/auth"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/database"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

// Lookups return (nil, nil) when nothing matches.

type clientStore interface {
	FindAll(ctx context.Context) ([]*models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	Add(ctx context.Context, client *models.Client) error
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id string) (bool, error)
}

type projectStore interface {
	FindAll(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error)
	FindByID(ctx context.Context, id string) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) (bool, error)
}

type userStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
}

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	clientHandler  clientHandler
	projectHandler projectHandler
	healthHandler  healthHandler
}

// stores is everything the router reads and writes.
type stores struct {
	clients  clientStore
	projects projectStore
	users    userStore
}

func storesFromDatabase(db database.Database) stores {
	return stores{
		clients:  db.ClientRepo(),
		projects: db.ProjectRepo(),
		users:    db.UserRepo(),
	}
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(s stores, tokens *auth.TokenManager, development bool) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(s.users, tokens, development),
		clientHandler:  newClientHandler(s.clients, development),
		projectHandler: newProjectHandler(s.projects, development),
		healthHandler:  newHealthHandler(development),
	}
}

// idParam returns the {id} path segment in its stored form
func idParam(r *http.Request) string {
	return models.NormalizeObjectID(chi.URLParam(r, "id"))
}
