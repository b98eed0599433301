package matchhandlers

import (
	"sync"
	"time"

	sharedtypes "github.com/Black-And-White-Club/ssbu-bot/app/shared/types"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle player entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type playerEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PlayerRateLimiter limits how fast each player may send match commands. It
// prunes stale entries inline.
type PlayerRateLimiter struct {
	players map[sharedtypes.PlayerID]*playerEntry
	mu      sync.Mutex
	r       rate.Limit
	b       int
	now     func() time.Time
}

// NewPlayerRateLimiter creates a limiter allowing r commands per second with
// bursts of b. A non-positive r disables limiting.
func NewPlayerRateLimiter(r rate.Limit, b int) *PlayerRateLimiter {
	if b < 1 {
		b = 1
	}
	return &PlayerRateLimiter{
		players: make(map[sharedtypes.PlayerID]*playerEntry),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

// Allow reports whether the player may send another command now.
func (l *PlayerRateLimiter) Allow(p sharedtypes.PlayerID) bool {
	if l == nil || l.r <= 0 {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.players) > cleanupThreshold {
		cutoff := now.Add(-maxIdleAge)
		for k, e := range l.players {
			if e.lastSeen.Before(cutoff) {
				delete(l.players, k)
			}
		}
	}

	e, ok := l.players[p]
	if !ok {
		e = &playerEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.players[p] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}
