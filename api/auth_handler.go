package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/auth"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/validator"
)

const (
	duplicateUserMessage      = "User with this email already exists"
	invalidCredentialsMessage = "Invalid email or password"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     userStore
	tokens    *auth.TokenManager
}

func newAuthHandler(users userStore, tokens *auth.TokenManager, development bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger, development),
		logger:    logger,
		users:     users,
		tokens:    tokens,
	}
}

type authResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Data    userResponse `json:"data"`
}

// signup registers a regular user and signs them in
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.SignupSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		email, _ := values.String("email")
		password, _ := values.String("password")

		existing, err := h.users.FindByEmail(r.Context(), email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewDuplicateKeyError(duplicateUserMessage, nil))
			return
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Failed to hash password").WithCause(err))
			return
		}

		// Signup never grants admin.
		user := &models.User{Email: email, Password: hash, Role: models.RoleUser}
		if err := h.users.Add(r.Context(), user); err != nil {
			if apiErr := errs.ClassifyPersistence(duplicateUserMessage, err); apiErr != nil {
				h.responder.WriteError(w, apiErr)
				return
			}
			h.responder.WriteError(w, errs.NewDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Str("userID", user.ID).Msg("User registered")
		h.writeToken(w, http.StatusCreated, user)
	}
}

func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := decodePayload(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		values, err := validator.LoginSchema.Validate(payload)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		email, _ := values.String("email")
		password, _ := values.String("password")

		user, err := h.users.FindByEmail(r.Context(), email)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("fetch", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentialsMessage))
			return
		}

		ok, err := auth.CheckPassword(user.Password, password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Failed to check password").WithCause(err))
			return
		}
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError(invalidCredentialsMessage))
			return
		}

		h.writeToken(w, http.StatusOK, user)
	}
}

// getProfile returns the account the bearer token names
func (h authHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxGetUser(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewIdentityNotFoundError())
			return
		}

		h.responder.WriteData(w, http.StatusOK, mapUser(user))
	}
}

func (h authHandler) writeToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.responder.WriteError(w, errs.NewInternalError("Failed to issue token").WithCause(err))
		return
	}

	h.responder.WriteJSON(w, status, authResponse{
		Success: true,
		Token:   token,
		Data:    mapUser(user),
	})
}
