package httpx

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig bounds login and registration submissions per client IP.
type RateLimitConfig struct {
	PerMinute int
	Burst     int
	// OnLimited is called for every rejected request. Optional.
	OnLimited func()
	// IdleTTL drops limiters for addresses not seen for this long.
	IdleTTL time.Duration
	now     func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet is a map of token buckets keyed by client address.
type limiterSet struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	perMinute := cfg.PerMinute
	if perMinute < 1 {
		perMinute = 1
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	idle := cfg.IdleTTL
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	now := cfg.now
	if now == nil {
		now = time.Now
	}
	return &limiterSet{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		idleTTL:  idle,
		now:      now,
	}
}

func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) > s.idleTTL {
		for k, l := range s.limiters {
			if now.Sub(l.lastSeen) > s.idleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}
	l, ok := s.limiters[key]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// RateLimit rejects POSTs beyond the configured rate with 429. Other methods
// pass through untouched.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	set := newLimiterSet(cfg)
	retryAfter := strconv.Itoa(int(time.Minute.Seconds()) / max(cfg.PerMinute, 1))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || set.allow(clientIP(r)) {
				next.ServeHTTP(w, r)
				return
			}
			if cfg.OnLimited != nil {
				cfg.OnLimited()
			}
			w.Header().Set("Retry-After", retryAfter)
			http.Error(w, "Too many attempts. Please wait a moment and try again.", http.StatusTooManyRequests)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
