package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pocketledger/pocketledger/internal/rest"
	log "github.com/sirupsen/logrus"
)

type SettingsDTO struct {
	Theme         string `json:"theme"`
	Currency      string `json:"currency"`
	MonthlyTarget string `json:"monthlyTarget"`
}

type PatchDTO struct {
	Theme         *string `json:"theme"`
	Currency      *string `json:"currency"`
	MonthlyTarget *string `json:"monthlyTarget"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetSettings godoc
// @Summary Get user preferences
// @Tags Settings
// @Produce json
// @Success 200 {object} SettingsDTO
// @Router /api/settings [get]
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	prefs, err := h.service.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(prefs)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateSettings godoc
// @Summary Change user preferences
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body PatchDTO true "Preference changes"
// @Success 200 {object} SettingsDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid preference value"
// @Router /api/settings [put]
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Updating settings")

	var patch PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	prefs, err := h.service.Update(r.Context(), Patch{
		Theme:         patch.Theme,
		Currency:      patch.Currency,
		MonthlyTarget: patch.MonthlyTarget,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTheme) || errors.Is(err, ErrInvalidCurrency) || errors.Is(err, ErrInvalidTarget) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(prefs)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(s Settings) SettingsDTO {
	return SettingsDTO{
		Theme:         s.Theme,
		Currency:      s.Currency,
		MonthlyTarget: s.MonthlyTarget,
	}
}
