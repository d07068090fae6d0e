package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/oddsmath"
)

// OddsHandler exposes the odds conversion and devig math
type OddsHandler struct {
	responder
}

// NewOddsHandler creates a new odds handler
func NewOddsHandler(logger logrus.FieldLogger) *OddsHandler {
	return &OddsHandler{responder: responder{logger: logger}}
}

// Convert shows a single price as American, decimal and implied probability
func (h *OddsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req models.ConvertRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if (req.American == nil) == (req.Decimal == nil) {
		h.respondError(w, http.StatusBadRequest, "provide exactly one of american or decimal", nil)
		return
	}

	var resp models.ConvertResponse
	var err error

	if req.American != nil {
		resp.American = *req.American
		if resp.Decimal, err = oddsmath.AmericanToDecimal(*req.American); err == nil {
			resp.ImpliedProb, err = oddsmath.AmericanToImpliedProb(*req.American)
		}
	} else {
		resp.Decimal = *req.Decimal
		if resp.American, err = oddsmath.DecimalToAmerican(*req.Decimal); err == nil {
			resp.ImpliedProb, err = oddsmath.DecimalToImpliedProb(*req.Decimal)
		}
	}

	if err != nil {
		h.respondCalcError(w, "conversion failed", err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Devig removes the vig from a two-way market given as prices or probabilities
func (h *OddsHandler) Devig(w http.ResponseWriter, r *http.Request) {
	var req models.DevigRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	hasAmerican := req.American1 != nil && req.American2 != nil
	hasProbs := req.P1 != nil && req.P2 != nil

	switch {
	case hasAmerican && req.P1 == nil && req.P2 == nil:
		fair, err := oddsmath.DevigFromAmericanTwoWay(*req.American1, *req.American2)
		if err != nil {
			h.respondCalcError(w, "devig failed", err)
			return
		}
		h.respondJSON(w, http.StatusOK, models.DevigResponse{
			Fair1:             fair.Fair1,
			Fair2:             fair.Fair2,
			FairOddsAmerican1: &fair.FairOddsAmerican1,
			FairOddsAmerican2: &fair.FairOddsAmerican2,
		})

	case hasProbs && req.American1 == nil && req.American2 == nil:
		fair1, fair2, err := oddsmath.DevigTwoWayProportional(*req.P1, *req.P2)
		if err != nil {
			h.respondCalcError(w, "devig failed", err)
			return
		}
		h.respondJSON(w, http.StatusOK, models.DevigResponse{Fair1: fair1, Fair2: fair2})

	default:
		h.respondError(w, http.StatusBadRequest, "provide either american1 and american2 or p1 and p2", nil)
	}
}

// ExpectedValue prices a model probability against a market price
func (h *OddsHandler) ExpectedValue(w http.ResponseWriter, r *http.Request) {
	var req models.ExpectedValueRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	if (req.AmericanOdds == nil) == (req.DecimalOdds == nil) {
		h.respondError(w, http.StatusBadRequest, "provide exactly one of american_odds or decimal_odds", nil)
		return
	}

	var resp models.ExpectedValueResponse
	var err error

	if req.AmericanOdds != nil {
		resp.ExpectedValue, err = oddsmath.ExpectedValueAmerican(req.ModelProb, *req.AmericanOdds)
	} else {
		resp.ExpectedValue, err = oddsmath.ExpectedValueDecimal(req.ModelProb, *req.DecimalOdds)
	}
	if err != nil {
		h.respondCalcError(w, "expected value failed", err)
		return
	}

	if req.MarketProb != nil {
		edge, err := oddsmath.EdgeProb(req.ModelProb, *req.MarketProb)
		if err != nil {
			h.respondCalcError(w, "edge failed", err)
			return
		}
		resp.Edge = &edge
	}

	h.respondJSON(w, http.StatusOK, resp)
}
