package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/health-keeper/internal/crypto"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/service"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/MKhiriev/health-keeper/models"
)

type loginRequest struct {
	UserID string `json:"user_id"`
	PIN    string `json:"pin,omitempty"`
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	sessionToken, err := h.services.AuthService.Login(ctx, req.UserID, req.PIN, h.encrypted)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrWrongPIN):
			log.Err(err).Msg("wrong pin")
			http.Error(w, "wrong pin", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	userID := utils.CanonicalUserID(req.UserID)
	token, err := utils.GenerateAccessToken(h.app.TokenIssuer, userID, sessionToken, h.app.TokenDuration, h.app.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.LoginResponse{UserID: userID, Token: token.SignedString}, http.StatusOK)
}

func (h *Handler) setPIN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	userID := utils.UserIDFromContext(ctx)
	if err := h.services.AuthService.SetPIN(ctx, userID, req.PIN, h.encrypted); err != nil {
		switch {
		case errors.Is(err, crypto.ErrInvalidPINFormat):
			log.Err(err).Msg("invalid pin format")
			http.Error(w, "pin must be 4 to 6 digits", http.StatusBadRequest)
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during pin setup")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.StatusResponse{OK: true, Message: "pin set"}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.services.SessionService.DestroySession(utils.UserIDFromContext(ctx))

	utils.WriteJSON(w, models.StatusResponse{OK: true, Message: "session destroyed"}, http.StatusOK)
}

// status reports whether a user's store is PIN protected. Public on purpose:
// clients need it to decide whether to prompt for a PIN before login.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID := utils.CanonicalUserID(r.URL.Query().Get("user_id"))
	if userID == "" {
		log.Error().Msg("missing user_id query parameter")
		http.Error(w, "missing user_id query parameter", http.StatusBadRequest)
		return
	}

	protected := h.services.AuthService.IsProtected(ctx, userID, h.encrypted)

	message := "unprotected"
	if protected {
		message = "pin protected"
	}
	utils.WriteJSON(w, models.StatusResponse{OK: true, Message: message}, http.StatusOK)
}
