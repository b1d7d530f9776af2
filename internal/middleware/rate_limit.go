package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/i18n"
)

const defaultNumShards = 16

// clientWindow tracks one client's requests in the current fixed window.
type clientWindow struct {
	remaining int
	resetAt   time.Time
}

type limiterShard struct {
	mu      sync.Mutex
	clients map[string]*clientWindow
}

// RateLimiter is a fixed-window, per-client-IP limiter. Clients are spread
// over FNV-hashed shards so unrelated IPs do not contend on one lock.
type RateLimiter struct {
	shards   []*limiterShard
	rate     int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter allows rate requests per client in every window.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter is NewRateLimiter with an explicit shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *RateLimiter {
	return newRateLimiter(rate, window, numShards, time.Now)
}

func newRateLimiter(rate int, window time.Duration, numShards int, now func() time.Time) *RateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	shards := make([]*limiterShard, numShards)
	for i := range shards {
		shards[i] = &limiterShard{clients: make(map[string]*clientWindow)}
	}

	rl := &RateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    now,
		stopCh: make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

func (rl *RateLimiter) shard(client string) *limiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(client))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// Allow consumes one request for client.
func (rl *RateLimiter) Allow(client string) (allowed bool, remaining int, resetAt time.Time) {
	s := rl.shard(client)
	now := rl.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.clients[client]
	if !ok || !now.Before(w.resetAt) {
		w = &clientWindow{remaining: rl.rate, resetAt: now.Add(rl.window)}
		s.clients[client] = w
	}
	if w.remaining <= 0 {
		return false, 0, w.resetAt
	}
	w.remaining--
	return true, w.remaining, w.resetAt
}

// RateLimit returns the middleware. Rejected requests get 429 with
// Retry-After in whole seconds.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetAt := rl.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			wait := int(math.Ceil(resetAt.Sub(rl.now()).Seconds()))
			if wait < 1 {
				wait = 1
			}
			c.Header("Retry-After", strconv.Itoa(wait))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) sweepLoop() {
	interval := rl.window
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stopCh:
			return
		}
	}
}

// sweep forgets clients whose window has ended.
func (rl *RateLimiter) sweep() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for client, w := range s.clients {
			if !now.Before(w.resetAt) {
				delete(s.clients, client)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the background sweep. Safe to call twice.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Clients returns the number of tracked clients.
func (rl *RateLimiter) Clients() int {
	total := 0
	for _, s := range rl.shards {
		s.mu.Lock()
		total += len(s.clients)
		s.mu.Unlock()
	}
	return total
}
