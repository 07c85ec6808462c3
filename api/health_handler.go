package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder Responder
	now       func() time.Time
}

func newHealthHandler(development bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder: NewResponder(logger, development),
		now:       time.Now,
	}
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Message:   "Server is running",
			Timestamp: formatTime(h.now()),
		})
	}
}

type routeNotFoundResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// routeNotFound answers both unknown paths and unsupported methods.
func (h healthHandler) routeNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, http.StatusNotFound, routeNotFoundResponse{
			Error:   "Route not found",
			Message: "Cannot " + r.Method + " " + r.URL.RequestURI(),
		})
	}
}
