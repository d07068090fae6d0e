package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/models"
	"github.com/XavierBriggs/fortuna/services/riskcourt/pkg/sizing"
)

// Stream keys consumed by other fortuna services
const (
	PicksCreatedStream     = "picks.created"
	PicksSettledStream     = "picks.settled"
	StakeRecommendedStream = "stake.recommended"
)

// StakeRecommendation is the payload of a stake.recommended event
type StakeRecommendation struct {
	UserID  string                  `json:"user_id"`
	Request sizing.StakeSizeRequest `json:"request"`
	Result  sizing.StakeSizeResult  `json:"result"`
	At      time.Time               `json:"at"`
}

// StreamPublisher publishes ledger events to Redis Streams
type StreamPublisher struct {
	client *redis.Client
	maxLen int64
}

// NewStreamPublisher creates a new stream publisher. maxLen bounds each
// stream approximately; zero leaves streams unbounded.
func NewStreamPublisher(client *redis.Client, maxLen int64) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		maxLen: maxLen,
	}
}

// EncodeEvent builds the XAdd values for an event: the JSON payload under a single field
func EncodeEvent(field string, payload any) (map[string]interface{}, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", field, err)
	}

	return map[string]interface{}{
		field: string(payloadJSON),
	}, nil
}

func (p *StreamPublisher) publish(ctx context.Context, stream, field string, payload any) error {
	values, err := EncodeEvent(field, payload)
	if err != nil {
		return err
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: p.maxLen > 0,
		Values: values,
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
	}

	return nil
}

// PublishPickCreated publishes a newly added pick
func (p *StreamPublisher) PublishPickCreated(ctx context.Context, pick *models.Pick) error {
	return p.publish(ctx, PicksCreatedStream, "pick", pick)
}

// PublishPickSettled publishes a graded pick
func (p *StreamPublisher) PublishPickSettled(ctx context.Context, pick *models.Pick) error {
	return p.publish(ctx, PicksSettledStream, "pick", pick)
}

// PublishStakeRecommended publishes a sizing recommendation
func (p *StreamPublisher) PublishStakeRecommended(ctx context.Context, rec StakeRecommendation) error {
	return p.publish(ctx, StakeRecommendedStream, "recommendation", rec)
}
