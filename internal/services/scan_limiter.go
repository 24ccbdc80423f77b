package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ScanLimiter applies a short per-scanner cooldown on repeated check-ins of
// the same ticket, in front of the database's own duplicate-scan handling.
// A zero cooldown disables it.
type ScanLimiter struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewScanLimiter creates a limiter with the given cooldown in seconds.
func NewScanLimiter(client *redis.Client, cooldownSeconds int) *ScanLimiter {
	return &ScanLimiter{
		client:   client,
		cooldown: time.Duration(cooldownSeconds) * time.Second,
	}
}

// Allow reports whether this scanner may check in this ticket right now. On
// Redis errors the scan is allowed; the limiter is an optimization, not an
// invariant.
func (l *ScanLimiter) Allow(ctx context.Context, verifiedBy, ticketID string) bool {
	if l == nil || l.client == nil || l.cooldown <= 0 {
		return true
	}

	key := fmt.Sprintf("scan_cooldown:%s:%s", verifiedBy, ticketID)
	ok, err := l.client.SetNX(ctx, key, "1", l.cooldown).Result()
	if err != nil {
		return true
	}
	return ok
}
