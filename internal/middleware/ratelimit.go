package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtlprog/transquote/internal/handler/dto"
)

// RateLimiter keeps one token bucket per client key and drops buckets that
// have been idle for longer than idleTTL.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	trusted []netip.Prefix
	now     func() time.Time
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption configures a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithIdleTTL sets how long an unused client bucket is kept.
func WithIdleTTL(d time.Duration) RateLimiterOption {
	return func(l *RateLimiter) { l.idleTTL = d }
}

// WithTrustedProxies makes the limiter key requests arriving from these
// networks by their X-Forwarded-For chain instead of the peer address.
func WithTrustedProxies(prefixes ...netip.Prefix) RateLimiterOption {
	return func(l *RateLimiter) { l.trusted = append(l.trusted, prefixes...) }
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second per
// client with the given burst.
func NewRateLimiter(rps float64, burst int, opts ...RateLimiterOption) *RateLimiter {
	l := &RateLimiter{
		entries: make(map[string]*limiterEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if ent, ok := l.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	l.entries[key] = &limiterEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup removes buckets idle for longer than the idle TTL.
func (l *RateLimiter) Cleanup() {
	cutoff := l.now().Add(-l.idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (l *RateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}

	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

// Limit rejects requests over the client's budget with 429 and a Retry-After header.
func (l *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.clientKey(r)
		res := l.limiter(key).ReserveN(l.now(), 1)

		if !res.OK() {
			reject(w, r, key, time.Second)
			return
		}
		if delay := res.DelayFrom(l.now()); delay > 0 {
			res.CancelAt(l.now())
			reject(w, r, key, delay)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func reject(w http.ResponseWriter, r *http.Request, key string, retryAfter time.Duration) {
	slog.WarnContext(r.Context(), "rate limit exceeded",
		"client", key,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)

	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(dto.NewErrorResponse("RATE_LIMITED", "Too many requests, please slow down."))
}

// clientKey walks X-Forwarded-For from the right while the hops are trusted
// proxies and returns the first untrusted address. Without a trusted peer the
// header is ignored.
func (l *RateLimiter) clientKey(r *http.Request) string {
	key := ClientKey(r)
	peer, err := netip.ParseAddr(key)
	if err != nil || !l.isTrusted(peer) {
		return key
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" {
		return key
	}
	hops := strings.Split(xff, ",")
	client := peer
	for i := len(hops) - 1; i >= 0; i-- {
		ip, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		client = ip.Unmap()
		if !l.isTrusted(client) {
			break
		}
	}
	return client.String()
}

func (l *RateLimiter) isTrusted(ip netip.Addr) bool {
	ip = ip.Unmap()
	for _, p := range l.trusted {
		if p.Contains(ip) {
			return true
		}
	}
	return false
}

// ClientKey identifies the caller by the remote host.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
