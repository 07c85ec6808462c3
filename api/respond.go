package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
)

// maxBodySize caps request payloads.
const maxBodySize = 1 << 20

type Responder struct {
	logger      zerolog.Logger
	development bool
}

func NewResponder(logger zerolog.Logger, development bool) Responder {
	return Responder{logger: logger, development: development}
}

type successResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type faultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stack   string `json:"stack,omitempty"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData writes `{success:true, data}`.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any) {
	r.WriteJSON(w, status, successResponse{Success: true, Data: data})
}

// WriteMessage writes `{success:true, message}`.
func (r Responder) WriteMessage(w http.ResponseWriter, status int, message string) {
	r.WriteJSON(w, status, successResponse{Success: true, Message: message})
}

// WriteError answers a classified *errs.ApiErr below 500 with its message.
// Everything else is a fault.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode >= http.StatusInternalServerError {
		r.WriteFault(w, err, nil)
		return
	}

	if apiErr.Cause != nil {
		r.logger.Debug().Str("error", apiErr.GetFullError()).Msg("request rejected")
	}
	r.WriteJSON(w, apiErr.StatusCode, errorResponse{
		Success: false,
		Message: apiErr.Error(),
		Errors:  apiErr.Errors,
	})
}

// WriteFault is the terminal handler for unclassified failures. The status
// comes from the error when it carries one. Outside development the body only
// holds the status text; stack is nil unless the fault was a panic.
func (r Responder) WriteFault(w http.ResponseWriter, err error, stack []byte) {
	status := http.StatusInternalServerError
	fullError := err.Error()
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		fullError = apiErr.GetFullError()
	}

	r.logger.Error().Int("status", status).Str("error", fullError).Msg("unhandled error")

	if !r.development {
		r.WriteJSON(w, status, faultResponse{Success: false, Error: http.StatusText(status)})
		return
	}

	if stack == nil {
		stack = debug.Stack()
	}
	r.WriteJSON(w, status, faultResponse{Success: false, Error: err.Error(), Stack: string(stack)})
}

// decodePayload reads a JSON object body into a generic map for the validator.
// An empty body decodes to an empty payload.
func decodePayload(r *http.Request) (map[string]interface{}, error) {
	payload := map[string]interface{}{}
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := decoder.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, nil
		}
		return nil, errs.NewBadRequestError(fmt.Sprintf("Invalid JSON payload: %v", err))
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}
