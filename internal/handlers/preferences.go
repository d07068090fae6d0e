package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/config"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
)

// PreferencesHandler handles user preference requests
type PreferencesHandler struct {
	responder
	db       db.LedgerDB
	defaults config.SizingDefaults
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(ledgerDB db.LedgerDB, defaults config.SizingDefaults, logger logrus.FieldLogger) *PreferencesHandler {
	return &PreferencesHandler{
		responder: responder{logger: logger},
		db:        ledgerDB,
		defaults:  defaults,
	}
}

// GetPreferences returns the caller's stored preferences, or the service defaults
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := middleware.UserID(r)

	prefs, err := h.db.GetUserPreferences(ctx, userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve preferences", err)
		return
	}

	source := "stored"
	if prefs == nil {
		prefs = defaultPreferences(userID, h.defaults)
		source = "default"
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"source":      source,
		"preferences": prefs,
	})
}

// UpdatePreferences replaces the caller's preferences
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var prefs models.UserPreferences
	if err := decodeJSON(r, &prefs); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := prefs.Validate(); err != nil {
		h.respondCalcError(w, "invalid preferences", err)
		return
	}

	// Identity comes from the request, never the body
	prefs.UserID = middleware.UserID(r)

	if err := h.db.UpdateUserPreferences(ctx, &prefs); err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to update preferences", err)
		return
	}

	updated, err := h.db.GetUserPreferences(ctx, prefs.UserID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve updated preferences", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "updated",
		"preferences": updated,
	})
}
