package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-backend/errs"
)

// developmentMode controls whether 500 responses carry diagnostic detail.
// Set once while building the router, before any request is served.
var developmentMode = true

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// errorResponse is the uniform failure envelope. The error field appears
// only outside production configuration.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func (r Responder) WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	// Marshal first so an encoding failure never produces a half-written body
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return a generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Msg(err.Error())
		response := errorResponse{Success: false, Message: "An error occurred"}
		if developmentMode {
			response.Error = err.Error()
		}
		r.WriteJSON(w, http.StatusInternalServerError, response)
		return
	}

	response := errorResponse{Success: false, Message: apiErr.Error()}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(apiErr).AnErr("cause", apiErr.Cause).Msg("internal error response")
		if developmentMode {
			detail := apiErr.Error()
			if apiErr.Cause != nil {
				detail = apiErr.Cause.Error()
			}
			response.Error = detail + "\n" + string(debug.Stack())
		}
	}

	r.WriteJSON(w, apiErr.StatusCode, response)
}

// wrapDatabaseError wraps a persistence failure with context information
func wrapDatabaseError(operation, entity string, cause error) error {
	return errs.NewDatabaseError(operation, entity, cause)
}
