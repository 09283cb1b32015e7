package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

const contentTypeJSON = "application/json"

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeBuffered(w, status, http.Header{"Content-Type": {contentTypeJSON}}, func(buf *bytes.Buffer) error {
		return json.NewEncoder(buf).Encode(payload)
	})
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
	ErrMsgInvalidStateError  = "Player state is invalid. Please check your inputs."
	ErrMsgInvalidInputError  = "Invalid request. Please check your inputs."
	ErrMsgFileNotFoundError  = "File not found"
	ErrMsgArmorNotFoundError = "Armor piece not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusBadRequest, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrArmorNotFound):
		return http.StatusNotFound, ErrMsgArmorNotFoundError
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound, ErrMsgFileNotFoundError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err and writes the mapped response. Validation
// failures carry their per-field issues so clients can highlight inputs.
func respondServiceError(w http.ResponseWriter, r *http.Request, opMessage string, err error) {
	log := logger.FromContext(r.Context())

	var verr *state.ValidationError
	if errors.As(err, &verr) {
		log.Info(opMessage, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidStateError,
			Fields: verr.Fields(),
		})
		return
	}

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opMessage, "error", err)
	} else {
		log.Warn(opMessage, "error", err)
	}
	respondError(w, status, message)
}
