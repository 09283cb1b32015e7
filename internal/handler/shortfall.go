package handler

import (
	"net/http"

	"github.com/koscheiundead/totkaa-v2/internal/bridge"
	"github.com/koscheiundead/totkaa-v2/internal/domain"
	"github.com/koscheiundead/totkaa-v2/internal/shortfall"
)

// ShortfallRequest lists target levels per armor id.
// Pieces left out are planned up to their max level.
type ShortfallRequest struct {
	TargetLevels map[string]int `json:"targetLevels" validate:"dive,keys,min=1,max=128,endkeys,armor_level"`
}

// ShortfallResponse is a shortfall with its rows pre-sorted for display
type ShortfallResponse struct {
	ByMaterial map[string]domain.Amounts  `json:"byMaterial"`
	Materials  []domain.MaterialShortfall `json:"materials"`
	Rupees     domain.Amounts             `json:"rupees"`
	Complete   bool                       `json:"complete"`
}

func newShortfallResponse(s domain.Shortfall) ShortfallResponse {
	return ShortfallResponse{
		ByMaterial: s.ByMaterial,
		Materials:  s.Materials(),
		Rupees:     s.Rupees,
		Complete:   s.Complete(),
	}
}

// HandleShortfallToMax plans every armor piece up to its max level
func HandleShortfallToMax(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := b.ShortfallToMax(r.Context())
		if err != nil {
			respondServiceError(w, r, ErrMsgShortfallFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, newShortfallResponse(result))
	}
}

// HandleShortfall plans armor pieces up to the requested levels
func HandleShortfall(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ShortfallRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Shortfall"); err != nil {
			return
		}

		targets := make(shortfall.Targets, len(req.TargetLevels))
		for id, level := range req.TargetLevels {
			targets[id] = domain.Level(level)
		}

		result, err := b.Shortfall(r.Context(), targets)
		if err != nil {
			respondServiceError(w, r, ErrMsgShortfallFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, newShortfallResponse(result))
	}
}

// HandleCatalog returns the loaded materials, armor and cost tables
func HandleCatalog(b bridge.Bridge) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, b.Catalog(r.Context()))
	}
}
