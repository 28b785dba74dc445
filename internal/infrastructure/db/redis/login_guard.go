package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// maxFailures is how many failed logins a username gets before being
	// locked out for the remainder of the window.
	maxFailures = 5
	failureTTL  = 15 * time.Minute
)

// LoginGuard throttles brute-force logins with a per-username failure
// counter in Redis. Key format: login_fail:<username>, expiring failureTTL
// after the first failure in the window.
type LoginGuard struct {
	client *redis.Client
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
func NewLoginGuard(client *redis.Client) *LoginGuard {
	return &LoginGuard{client: client}
}

// Blocked reports whether the username has exhausted its attempts.
func (g *LoginGuard) Blocked(ctx context.Context, username string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(username)).Int64()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("login guard check: %w", err)
	}
	return n >= maxFailures, nil
}

// RecordFailure counts one failed attempt, starting the expiry window on
// the first failure.
func (g *LoginGuard) RecordFailure(ctx context.Context, username string) error {
	key := g.key(username)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login guard incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, failureTTL).Err(); err != nil {
			return fmt.Errorf("login guard expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, username string) error {
	return g.client.Del(ctx, g.key(username)).Err()
}

func (g *LoginGuard) key(username string) string {
	return "login_fail:" + username
}
