package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/db"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/settlement"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

// EventPublisher is the subset of the stream publisher the handlers use
type EventPublisher interface {
	PublishPickCreated(ctx context.Context, pick *models.Pick) error
	PublishPickSettled(ctx context.Context, pick *models.Pick) error
	PublishStakeRecommended(ctx context.Context, rec publisher.StakeRecommendation) error
}

// responder carries the logger shared by every handler
type responder struct {
	logger logrus.FieldLogger
}

// Handler serves service-level endpoints
type Handler struct {
	responder
	db db.LedgerDB
}

// NewHandler creates a new handler with dependencies
func NewHandler(database db.LedgerDB, logger logrus.FieldLogger) *Handler {
	return &Handler{
		responder: responder{logger: logger},
		db:        database,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.respondError(w, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "riskcourt",
	})
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Error("error encoding response")
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		h.logger.WithError(err).WithField("status", status).Error(message)
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.WithError(err).Error("error encoding error response")
	}
}

// respondCalcError maps domain errors to status codes. Invalid arguments
// are the caller's fault and carry their message back verbatim.
func (h responder) respondCalcError(w http.ResponseWriter, fallback string, err error) {
	switch {
	case errors.Is(err, oddsmath.ErrInvalidArgument):
		h.respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, settlement.ErrAlreadySettled):
		h.respondError(w, http.StatusConflict, err.Error(), nil)
	default:
		h.respondError(w, http.StatusInternalServerError, fallback, err)
	}
}
