package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; language profiles come from the config file unless set.
	DefaultDatabaseURL = ""

	// DefaultMetricsPrefix namespaces the Redis counter keys.
	DefaultMetricsPrefix = "quoter:metrics"
)

// Config is the validated business configuration.
type Config struct {
	Port string

	// Location is the business timezone every deadline is computed in.
	Location        *time.Location
	DefaultSchedule domain.WorkSchedule
	MinDuration     time.Duration
	DiscountTypes   []string
	Tax             float64
	Rates           *domain.RateTable

	RateLimit RateLimit
	Metrics   Metrics
}

// RateLimit configures the per-client request limiter. Zero RPS disables it.
// X-Forwarded-For is honoured only for requests arriving from TrustedProxies.
type RateLimit struct {
	RPS            float64
	Burst          int
	TrustedProxies []netip.Prefix
}

// Validate rejects limits that would refuse every request.
func (r RateLimit) Validate() error {
	if r.RPS < 0 || r.Burst < 0 {
		return errors.New("rps and burst must not be negative")
	}
	if r.RPS > 0 && r.Burst < 1 {
		return errors.New("burst must be at least 1 when rps is set")
	}
	return nil
}

// ParseTrustedProxies accepts plain addresses and CIDR prefixes.
func ParseTrustedProxies(values []string) ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Metrics configures the optional Redis counters. Empty RedisAddr disables them.
type Metrics struct {
	RedisAddr string
	Prefix    string
}
