package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/validator"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectStore
}

func newProjectHandler(projects projectStore, development bool) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		projects:  projects,
	}
}

// addProject creates a project and answers with the mapped record
func (h projectHandler) addProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.ProjectSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := &models.Project{}
		applyProjectValues(project, values)

		if err := h.projects.Add(r.Context(), project); err != nil {
			h.writePersistenceError(w, "create", err)
			return
		}

		h.logger.Info().Str("projectID", project.ID).Str("clientID", project.ClientID).Msg("Project created")
		h.responder.WriteData(w, http.StatusCreated, mapProject(project))
	}
}

// getProjects lists projects, optionally only those of ?clientId=
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.ProjectFilter{ClientID: models.NormalizeObjectID(r.URL.Query().Get("clientId"))}

		projects, err := h.projects.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "projects", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapProjects(projects))
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projects.FindByID(r.Context(), idParam(r))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapProject(project))
	}
}

// updateProject merges the present fields into the stored project. Omitted
// fields keep their stored values, and the merged record is validated again
// on save.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.ProjectUpdateSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id := idParam(r)
		project, err := h.projects.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		applyProjectValues(project, values)
		if err := h.projects.Update(r.Context(), project); err != nil {
			h.writePersistenceError(w, "update", err)
			return
		}

		updated, err := h.projects.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch updated", "project", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapProject(updated))
	}
}

func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		deleted, err := h.projects.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("Project"))
			return
		}

		h.logger.Info().Str("projectID", id).Msg("Project deleted")
		h.responder.WriteMessage(w, http.StatusOK, "Project deleted")
	}
}

// Projects have no unique columns besides the id, so a duplicate key can only
// come from an id collision.
func (h projectHandler) writePersistenceError(w http.ResponseWriter, operation string, err error) {
	if apiErr := errs.ClassifyPersistence("Project already exists", err); apiErr != nil {
		h.responder.WriteError(w, apiErr)
		return
	}
	h.responder.WriteError(w, errs.NewDatabaseError(operation, "project", err))
}

func applyProjectValues(p *models.Project, values validator.Values) {
	if title, ok := values.String("title"); ok {
		p.Title = title
	}
	if description, ok := values.String("description"); ok {
		p.Description = description
	}
	if status, ok := values.String("status"); ok {
		p.Status = models.ProjectStatus(status)
	}
	if deadline, ok := values.Time("deadline"); ok {
		p.Deadline = deadline
	}
	if clientID, ok := values.String("clientId"); ok && clientID != p.ClientID {
		p.ClientID = clientID
		// the preloaded client no longer matches
		p.Client = nil
	}
}
