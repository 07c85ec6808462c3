package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/validator"
)

const duplicateClientMessage = "Client with this email already exists"

type clientHandler struct {
	responder Responder
	logger    zerolog.Logger
	clients   clientStore
}

func newClientHandler(clients clientStore, development bool) clientHandler {
	logger := log.With().Str("handlerName", "clientHandler").Logger()

	return clientHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		clients:   clients,
	}
}

// addClient creates a client from a validated payload
func (h clientHandler) addClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.ClientSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		client := &models.Client{}
		applyClientValues(client, values)

		if err := h.clients.Add(r.Context(), client); err != nil {
			h.writePersistenceError(w, "create", err)
			return
		}

		h.logger.Info().Str("clientID", client.ID).Msg("Client created")
		h.responder.WriteData(w, http.StatusCreated, mapClient(client))
	}
}

// getClients lists every client with its projects
func (h clientHandler) getClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := h.clients.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "clients", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapClients(clients))
	}
}

func (h clientHandler) getClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, err := h.clients.FindByID(r.Context(), idParam(r))
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "client", err))
			return
		}
		if client == nil {
			h.responder.WriteError(w, errs.NewNotFound("Client"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapClient(client))
	}
}

// updateClient applies the fields present in the payload to the stored client
func (h clientHandler) updateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.ClientUpdateSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id := idParam(r)
		client, err := h.clients.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "client", err))
			return
		}
		if client == nil {
			h.responder.WriteError(w, errs.NewNotFound("Client"))
			return
		}

		applyClientValues(client, values)
		if err := h.clients.Update(r.Context(), client); err != nil {
			h.writePersistenceError(w, "update", err)
			return
		}

		updated, err := h.clients.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch updated", "client", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFound("Client"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapClient(updated))
	}
}

// deleteClient removes a client. Its projects are kept.
func (h clientHandler) deleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := idParam(r)
		deleted, err := h.clients.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("delete", "client", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFound("Client"))
			return
		}

		h.logger.Info().Str("clientID", id).Msg("Client deleted")
		h.responder.WriteMessage(w, http.StatusOK, "Client deleted")
	}
}

func (h clientHandler) writePersistenceError(w http.ResponseWriter, operation string, err error) {
	if apiErr := errs.ClassifyPersistence(duplicateClientMessage, err); apiErr != nil {
		h.responder.WriteError(w, apiErr)
		return
	}
	h.responder.WriteError(w, errs.NewDatabaseError(operation, "client", err))
}

func applyClientValues(c *models.Client, values validator.Values) {
	if name, ok := values.String("name"); ok {
		c.Name = name
	}
	if email, ok := values.String("email"); ok {
		c.Email = email
	}
	if phone, ok := values.String("phone"); ok {
		c.Phone = phone
	}
}
