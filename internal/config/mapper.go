package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mtlprog/transquote/internal/domain"
)

// ErrInvalidConfig marks configuration values that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Map validates a decoded YAML document and converts it to a Config.
func Map(path string, yc YAMLConfig) (Config, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(yc.Calc.TimeZone))
	if err != nil || yc.Calc.TimeZone == "" {
		return Config{}, invalidField(path, "calc.timeZone", fmt.Sprintf("unknown timezone %q", yc.Calc.TimeZone))
	}

	if len(yc.Calc.WorkTime) != 2 {
		return Config{}, invalidField(path, "calc.workTime", "expected [startHour, endHour]")
	}
	if len(yc.Calc.WorkDays) != 2 {
		return Config{}, invalidField(path, "calc.workDays", "expected [startDay, endDay]")
	}
	schedule := domain.WorkSchedule{
		StartHour: yc.Calc.WorkTime[0],
		EndHour:   yc.Calc.WorkTime[1],
		StartDay:  yc.Calc.WorkDays[0],
		EndDay:    yc.Calc.WorkDays[1],
	}
	if err := schedule.Validate(); err != nil {
		return Config{}, invalidField(path, "calc.workTime/workDays", err.Error())
	}

	if yc.Calc.MinTime <= 0 {
		return Config{}, invalidField(path, "calc.minTime", "must be positive")
	}
	if yc.Calc.UTypesTax <= 0 {
		return Config{}, invalidField(path, "calc.uTypesTax", "must be positive")
	}

	rates, err := mapLanguages(path, yc.Calc.Lang)
	if err != nil {
		return Config{}, err
	}

	limit := RateLimit{RPS: yc.RateLimit.RPS, Burst: yc.RateLimit.Burst}
	if err := limit.Validate(); err != nil {
		return Config{}, invalidField(path, "ratelimit", err.Error())
	}
	limit.TrustedProxies, err = ParseTrustedProxies(yc.RateLimit.TrustedProxies)
	if err != nil {
		return Config{}, invalidField(path, "ratelimit.trustedProxies", err.Error())
	}

	cfg := Config{
		Port:            yc.Server.Port,
		Location:        loc,
		DefaultSchedule: schedule,
		MinDuration:     time.Duration(yc.Calc.MinTime) * time.Millisecond,
		DiscountTypes:   yc.Calc.DiscTypes,
		Tax:             yc.Calc.UTypesTax,
		Rates:           rates,
		RateLimit:       limit,
		Metrics: Metrics{
			RedisAddr: yc.Metrics.RedisAddr,
			Prefix:    yc.Metrics.Prefix,
		},
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.Metrics.Prefix == "" {
		cfg.Metrics.Prefix = DefaultMetricsPrefix
	}
	return cfg, nil
}

func mapLanguages(path string, in map[string]YAMLLanguage) (*domain.RateTable, error) {
	if len(in) == 0 {
		return nil, invalidField(path, "calc.lang", "at least one language is required")
	}

	codes := make([]string, 0, len(in))
	for code := range in {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	profiles := make([]domain.LanguageProfile, 0, len(codes))
	for _, code := range codes {
		l := in[code]
		if l.LPH <= 0 {
			return nil, invalidField(path, "calc.lang."+code+".lph", "must be positive")
		}
		profiles = append(profiles, domain.LanguageProfile{
			Code:         code,
			RatePerChar:  l.PL,
			MinimumPrice: l.Min,
			CharsPerHour: l.LPH,
		})
	}

	rates, err := domain.NewRateTable(profiles)
	if err != nil {
		return nil, invalidField(path, "calc.lang", err.Error())
	}
	return rates, nil
}

func invalidField(path, field, msg string) error {
	return fmt.Errorf("config %s: field %s: %s: %w", path, field, msg, ErrInvalidConfig)
}
