// Package cache provides Redis-backed supporting stores.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// saturationAlertPrefix is the prefix for near-saturation alert keys.
	saturationAlertPrefix = "capacity_alert:near_saturation:"
	// DefaultAlertCooldownMinutes is the default cooldown period in minutes.
	DefaultAlertCooldownMinutes = 30
)

// SaturationAlerts provides Redis-based deduplication of near-saturation
// warnings: once a NAP has been reported, further warnings are suppressed
// for the cooldown period.
type SaturationAlerts struct {
	client *redis.Client
}

// NewSaturationAlerts creates a new SaturationAlerts instance.
func NewSaturationAlerts(client *redis.Client) *SaturationAlerts {
	return &SaturationAlerts{client: client}
}

func (s *SaturationAlerts) buildKey(napID uint) string {
	return fmt.Sprintf("%s%d", saturationAlertPrefix, napID)
}

// ShouldAlert reports whether a near-saturation warning for the NAP should
// be emitted (true when not in cooldown).
func (s *SaturationAlerts) ShouldAlert(ctx context.Context, napID uint) (bool, error) {
	exists, err := s.client.Exists(ctx, s.buildKey(napID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check alert key: %w", err)
	}
	return exists == 0, nil
}

// MarkAlerted puts the NAP's warning into cooldown for the given TTL.
func (s *SaturationAlerts) MarkAlerted(ctx context.Context, napID uint, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultAlertCooldownMinutes * time.Minute
	}
	if err := s.client.Set(ctx, s.buildKey(napID), time.Now().UTC().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark alert: %w", err)
	}
	return nil
}

// Clear removes the cooldown for the NAP, re-arming its warning.
func (s *SaturationAlerts) Clear(ctx context.Context, napID uint) error {
	if err := s.client.Del(ctx, s.buildKey(napID)).Err(); err != nil {
		return fmt.Errorf("failed to clear alert: %w", err)
	}
	return nil
}
