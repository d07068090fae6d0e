package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/config"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/sizing"
)

// SizingHandler serves stake size recommendations
type SizingHandler struct {
	responder
	db        db.LedgerDB
	publisher EventPublisher
	defaults  config.SizingDefaults
}

// NewSizingHandler creates a new sizing handler
func NewSizingHandler(ledgerDB db.LedgerDB, pub EventPublisher, defaults config.SizingDefaults, logger logrus.FieldLogger) *SizingHandler {
	return &SizingHandler{
		responder: responder{logger: logger},
		db:        ledgerDB,
		publisher: pub,
		defaults:  defaults,
	}
}

// StakeSize recommends a stake for one bet. Risk parameters missing from
// the request come from the caller's stored preferences, then the service defaults.
// A request carrying all of them, max_stake included, never touches the store.
func (h *SizingHandler) StakeSize(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input models.StakeSizeInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	userID := middleware.UserID(r)

	// Stored preferences are only consulted for parameters the request leaves out
	prefs := &models.UserPreferences{UserID: userID}
	if !input.HasRiskParams() {
		stored, err := h.db.GetUserPreferences(ctx, userID)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, "failed to retrieve preferences", err)
			return
		}
		prefs = stored
		if prefs == nil {
			prefs = defaultPreferences(userID, h.defaults)
		}
	}

	req := resolveStakeRequest(input, prefs)

	result, err := sizing.StakeSize(req)
	if err != nil {
		h.respondCalcError(w, "stake sizing failed", err)
		return
	}

	// The recommendation stands even if the event is lost
	if h.publisher != nil {
		rec := publisher.StakeRecommendation{UserID: userID, Request: req, Result: *result, At: time.Now().UTC()}
		if err := h.publisher.PublishStakeRecommended(ctx, rec); err != nil {
			h.logger.WithError(err).WithField("user_id", userID).Warn("failed to publish stake recommendation")
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"request": req,
		"result":  result,
	})
}

// resolveStakeRequest fills the risk parameters the caller left out
func resolveStakeRequest(input models.StakeSizeInput, prefs *models.UserPreferences) sizing.StakeSizeRequest {
	req := prefs.StakeRequest(input.ModelProb, input.AmericanOdds)

	if input.Bankroll != nil {
		req.Bankroll = *input.Bankroll
	}
	if input.KellyMultiplier != nil {
		req.KellyMultiplier = *input.KellyMultiplier
	}
	if input.MaxStakePct != nil {
		req.MaxStakePct = *input.MaxStakePct
	}
	if input.MinStake != nil {
		req.MinStake = *input.MinStake
	}
	if input.MaxStake != nil {
		req.MaxStake = input.MaxStake
	}

	return req
}

func defaultPreferences(userID string, defaults config.SizingDefaults) *models.UserPreferences {
	return &models.UserPreferences{
		UserID:          userID,
		Bankroll:        defaults.Bankroll,
		KellyMultiplier: defaults.KellyMultiplier,
		MaxStakePct:     defaults.MaxStakePct,
		MinStake:        defaults.MinStake,
	}
}
