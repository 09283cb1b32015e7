package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/koscheiundead/totkaa-v2/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body, validates it, and returns appropriate errors.
// It logs the operation and returns a standardized error response to the client.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
//
// Example usage:
//
//	var req SetRupeesRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Set rupees"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := decodeJSONBody(r, req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondDecodeError(w, err)
		return err
	}

	log.Debug(fmt.Sprintf("%s request decoded", actionName))

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// decodeJSONBody decodes a single JSON value, keeping numbers as json.Number
// so large or string-typed quantities reach state validation unchanged
func decodeJSONBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(dst)
}

// readBody reads the whole request body, writing an error response on failure
func readBody(r *http.Request, w http.ResponseWriter, actionName string) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		logger.FromContext(r.Context()).Warn(fmt.Sprintf("Failed to read %s request", actionName), "error", err)
		respondDecodeError(w, err)
		return nil, false
	}
	return data, true
}

func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge)
		return
	}
	respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
}
