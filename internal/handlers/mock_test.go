package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/config"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/handlers"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/publisher"
	"github.com/XavierBriggs/fortuna/services/riskcourt/internal/settlement"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
)

var errDatabase = errors.New("connection refused")

// MockDB implements db.LedgerDB in memory
type MockDB struct {
	mu          sync.Mutex
	picks       map[uuid.UUID]*models.Pick
	prefs       map[string]*models.UserPreferences
	lastFilters models.PickFilters
	summary     *models.PickSummary
	shouldError bool
}

func NewMockDB() *MockDB {
	return &MockDB{
		picks: make(map[uuid.UUID]*models.Pick),
		prefs: make(map[string]*models.UserPreferences),
	}
}

func (m *MockDB) Ping(ctx context.Context) error {
	if m.shouldError {
		return errDatabase
	}
	return nil
}

func (m *MockDB) CreatePick(ctx context.Context, userID string, input *models.CreatePickInput) (*models.Pick, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	pick := &models.Pick{
		ID:         uuid.New(),
		UserID:     userID,
		GameID:     input.GameID,
		MarketType: input.MarketType,
		Selection:  input.Selection,
		Line:       input.Line,
		Odds:       input.Odds,
		StakeUnits: input.StakeUnits,
		BookSlug:   input.BookSlug,
		Notes:      input.Notes,
		Snapshot:   input.Snapshot,
		Status:     models.PickOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.picks[pick.ID] = pick
	return pick, nil
}

func (m *MockDB) GetPicks(ctx context.Context, filters models.PickFilters) ([]*models.Pick, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFilters = filters
	picks := []*models.Pick{}
	for _, p := range m.picks {
		if p.UserID == filters.UserID {
			picks = append(picks, p)
		}
	}
	return picks, nil
}

func (m *MockDB) GetPickByID(ctx context.Context, userID string, id uuid.UUID) (*models.Pick, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.picks[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

func (m *MockDB) SettlePick(ctx context.Context, userID string, id uuid.UUID, status models.PickStatus) (*models.Pick, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.picks[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}

	result, err := settlement.Grade(p, status)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	p.Status = status
	p.ResultUnits = &result
	p.SettledAt = &now
	return p, nil
}

func (m *MockDB) GetPickSummary(ctx context.Context, userID string) (*models.PickSummary, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &models.PickSummary{}, nil
}

func (m *MockDB) GetUserPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	if m.shouldError {
		return nil, errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.prefs[userID]
	if !ok {
		return nil, nil
	}
	stored := *p
	return &stored, nil
}

func (m *MockDB) UpdateUserPreferences(ctx context.Context, prefs *models.UserPreferences) error {
	if m.shouldError {
		return errDatabase
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *prefs
	stored.UpdatedAt = time.Now().UTC()
	m.prefs[prefs.UserID] = &stored
	return nil
}

func (m *MockDB) Close() error {
	return nil
}

// MockPublisher records published events
type MockPublisher struct {
	mu              sync.Mutex
	created         []*models.Pick
	settled         []*models.Pick
	recommendations []publisher.StakeRecommendation
	shouldError     bool
}

func (p *MockPublisher) PublishPickCreated(ctx context.Context, pick *models.Pick) error {
	if p.shouldError {
		return errors.New("stream unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, pick)
	return nil
}

func (p *MockPublisher) PublishPickSettled(ctx context.Context, pick *models.Pick) error {
	if p.shouldError {
		return errors.New("stream unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.settled = append(p.settled, pick)
	return nil
}

func (p *MockPublisher) PublishStakeRecommended(ctx context.Context, rec publisher.StakeRecommendation) error {
	if p.shouldError {
		return errors.New("stream unavailable")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.recommendations = append(p.recommendations, rec)
	return nil
}

var testDefaults = config.SizingDefaults{
	Bankroll:        1000,
	KellyMultiplier: 0.25,
	MaxStakePct:     0.02,
	MinStake:        0,
}

func newTestRouter(db *MockDB, pub *MockPublisher) (http.Handler, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	return handlers.NewRouter(handlers.RouterDeps{
		DB:          db,
		Publisher:   pub,
		Defaults:    testDefaults,
		CORSOrigins: []string{"http://localhost:3000"},
		Logger:      logger,
	}), hook
}
