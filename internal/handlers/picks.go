package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/middleware"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

// PickHandler handles ledger requests
type PickHandler struct {
	responder
	db        db.LedgerDB
	publisher EventPublisher
}

// NewPickHandler creates a new pick handler
func NewPickHandler(ledgerDB db.LedgerDB, pub EventPublisher, logger logrus.FieldLogger) *PickHandler {
	return &PickHandler{
		responder: responder{logger: logger},
		db:        ledgerDB,
		publisher: pub,
	}
}

func validatePickInput(input *models.CreatePickInput) error {
	if strings.TrimSpace(input.GameID) == "" {
		return oddsmath.Invalid("game_id", "be set")
	}
	if !input.MarketType.Valid() {
		return oddsmath.Invalid("market_type", "be one of moneyline, spread, total, prop")
	}
	if strings.TrimSpace(input.Selection) == "" {
		return oddsmath.Invalid("selection", "be set")
	}
	if err := oddsmath.RequireNonZero("odds", float64(input.Odds)); err != nil {
		return err
	}
	if err := oddsmath.RequireFinite("stake_units", input.StakeUnits); err != nil {
		return err
	}
	if input.StakeUnits <= 0 {
		return oddsmath.Invalid("stake_units", "be greater than 0")
	}
	if input.Line != nil {
		if err := oddsmath.RequireFinite("line", *input.Line); err != nil {
			return err
		}
	}
	return nil
}

// CreatePick adds a pick to the caller's ledger
func (h *PickHandler) CreatePick(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input models.CreatePickInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if err := validatePickInput(&input); err != nil {
		h.respondCalcError(w, "invalid pick", err)
		return
	}

	userID := middleware.UserID(r)

	pick, err := h.db.CreatePick(ctx, userID, &input)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to create pick", err)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishPickCreated(ctx, pick); err != nil {
			h.logger.WithError(err).WithField("pick_id", pick.ID).Warn("failed to publish pick created")
		}
	}

	h.respondJSON(w, http.StatusCreated, pick)
}

// GetPicks retrieves the caller's picks with optional filters
// Query params: status, market, book, since, until, limit, offset
func (h *PickHandler) GetPicks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	filters := models.PickFilters{
		UserID:     middleware.UserID(r),
		Status:     r.URL.Query().Get("status"),
		MarketType: r.URL.Query().Get("market"),
		BookSlug:   r.URL.Query().Get("book"),
		Limit:      parseIntParam(r, "limit", 50),
		Offset:     parseIntParam(r, "offset", 0),
	}

	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		if t, err := time.Parse(time.RFC3339, sinceStr); err == nil {
			filters.Since = &t
		}
	}

	if untilStr := r.URL.Query().Get("until"); untilStr != "" {
		if t, err := time.Parse(time.RFC3339, untilStr); err == nil {
			filters.Until = &t
		}
	}

	// Validate limit
	if filters.Limit <= 0 || filters.Limit > 500 {
		filters.Limit = 500
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	picks, err := h.db.GetPicks(ctx, filters)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve picks", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"picks":  picks,
		"count":  len(picks),
		"limit":  filters.Limit,
		"offset": filters.Offset,
	})
}

// GetPick retrieves a single pick by ID
func (h *PickHandler) GetPick(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pickID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid pick ID", nil)
		return
	}

	pick, err := h.db.GetPickByID(ctx, middleware.UserID(r), pickID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve pick", err)
		return
	}

	if pick == nil {
		h.respondError(w, http.StatusNotFound, "pick not found", nil)
		return
	}

	h.respondJSON(w, http.StatusOK, pick)
}

// SettlePick grades an open pick as won, lost, push or cancelled
func (h *PickHandler) SettlePick(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	pickID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid pick ID", nil)
		return
	}

	var input models.SettlePickInput
	if err := decodeJSON(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	pick, err := h.db.SettlePick(ctx, middleware.UserID(r), pickID, input.Status)
	if err != nil {
		h.respondCalcError(w, "failed to settle pick", err)
		return
	}

	if pick == nil {
		h.respondError(w, http.StatusNotFound, "pick not found", nil)
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishPickSettled(ctx, pick); err != nil {
			h.logger.WithError(err).WithField("pick_id", pick.ID).Warn("failed to publish pick settled")
		}
	}

	h.respondJSON(w, http.StatusOK, pick)
}

// GetPickSummary retrieves aggregate ledger statistics
func (h *PickHandler) GetPickSummary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	summary, err := h.db.GetPickSummary(ctx, middleware.UserID(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to retrieve summary", err)
		return
	}

	h.respondJSON(w, http.StatusOK, summary)
}
