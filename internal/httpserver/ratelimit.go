package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// limiterPool holds one token bucket per client address. Entries not seen
// within ttl are dropped by a background sweep started on first use.
type limiterPool struct {
	mu            sync.Mutex
	m             map[string]*limiterEntry
	rps           float64
	burst         int
	startCleanup  sync.Once
	ttl           time.Duration
	cleanupPeriod time.Duration
	now           func() time.Time
}

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

func newLimiterPool(rps float64, burst int) *limiterPool {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &limiterPool{
		m:             make(map[string]*limiterEntry),
		rps:           rps,
		burst:         burst,
		ttl:           10 * time.Minute,
		cleanupPeriod: time.Minute,
		now:           time.Now,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.startCleanup.Do(func() { go p.cleanupLoop() })

	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	if e, ok := p.m[key]; ok {
		e.lastSeen = now
		return e.l
	}
	l := rate.NewLimiter(rate.Limit(p.rps), p.burst)
	p.m[key] = &limiterEntry{l: l, lastSeen: now}
	return l
}

func (p *limiterPool) Allow(key string) bool {
	return p.get(key).Allow()
}

func (p *limiterPool) cleanupLoop() {
	ticker := time.NewTicker(p.cleanupPeriod)
	defer ticker.Stop()
	for range ticker.C {
		p.evict()
	}
}

// evict drops entries idle for longer than ttl.
func (p *limiterPool) evict() {
	p.mu.Lock()
	defer p.mu.Unlock()
	cutoff := p.now().Add(-p.ttl)
	for k, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, k)
		}
	}
}

func (p *limiterPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.m)
}

// clientKey is the caller's address as left by middleware.RealIP. The
// session header is client supplied and never used as a key.
func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateLimit throttles mutations per client address.
func RateLimit(p *limiterPool, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			if !p.Allow(key) {
				log.Warn("rate limit exceeded", zap.String("client", key), zap.String("path", r.URL.Path))
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
