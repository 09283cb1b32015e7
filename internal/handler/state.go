package handler

import (
	"bytes"
	"net/http"

	"github.com/koscheiundead/totkaa-v2/internal/bridge"
	"github.com/koscheiundead/totkaa-v2/internal/logger"
	"github.com/koscheiundead/totkaa-v2/internal/state"
)

// SetRupeesRequest replaces the rupee balance
type SetRupeesRequest struct {
	Amount *int `json:"amount" validate:"required,min=0,max=2147483647"`
}

// FileRequest names the file an export or import should use.
// An empty path is a canceled dialog.
type FileRequest struct {
	FilePath string `json:"filePath" validate:"max=4096"`
}

// HandlePing answers a liveness probe from the UI
func HandlePing(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, SuccessResponse{Message: b.Ping(r.Context())})
	}
}

// HandleGetState returns the stored player state
func HandleGetState(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := b.GetState(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, current)
	}
}

// HandlePatchState merges a partial state into the stored one.
//
// Materials and armor levels are merged key by key. The "rupees" field is a
// DELTA added to the current balance; PUT /state/rupees replaces it instead.
func HandlePatchState(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch state.Patch
		if err := decodeJSONBody(r, &patch); err != nil {
			logger.FromContext(r.Context()).Warn("Failed to decode state patch", "error", err)
			respondDecodeError(w, err)
			return
		}

		next, err := b.SetState(r.Context(), patch)
		if err != nil {
			respondServiceError(w, r, ErrMsgUpdateStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, next)
	}
}

// HandleSetRupees overwrites the rupee balance
func HandleSetRupees(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetRupeesRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Set rupees"); err != nil {
			return
		}

		next, err := b.SetRupees(r.Context(), *req.Amount)
		if err != nil {
			respondServiceError(w, r, ErrMsgSetRupeesFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, next)
	}
}

// HandleResetState replaces the stored state with catalog defaults
func HandleResetState(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next, err := b.ResetToDefaults(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgResetStateFailed, err)
			return
		}
		logger.FromContext(r.Context()).Info(MsgStateReset)
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgStateReset, Data: next})
	}
}

// HandleExportState returns the pretty-printed state document
func HandleExportState(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := b.ExportState(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgExportStateFailed, err)
			return
		}
		header := http.Header{
			"Content-Type":        {contentTypeJSON},
			"Content-Disposition": {`attachment; filename="` + bridge.DefaultFileName + `"`},
		}
		writeBuffered(w, http.StatusOK, header, func(buf *bytes.Buffer) error {
			_, err := buf.Write(data)
			return err
		})
	}
}

// HandleImportState replaces the stored state with the request body
func HandleImportState(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, ok := readBody(r, w, "Import state")
		if !ok {
			return
		}

		next, err := b.ImportState(r.Context(), data)
		if err != nil {
			respondServiceError(w, r, ErrMsgImportStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgImportedState, Data: next})
	}
}

// HandleExportFile writes the state to the path in the request body
func HandleExportFile(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Export file"); err != nil {
			return
		}

		result, err := b.ExportToFile(r.Context(), bridge.NewStaticDialog(req.FilePath))
		if err != nil {
			respondServiceError(w, r, ErrMsgExportStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleImportFile replaces the state with the file named in the request body
func HandleImportFile(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FileRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Import file"); err != nil {
			return
		}

		result, err := b.ImportFromFile(r.Context(), bridge.NewStaticDialog(req.FilePath))
		if err != nil {
			respondServiceError(w, r, ErrMsgImportStateFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, result)
	}
}
