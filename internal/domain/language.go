package domain

import (
	"fmt"
	"sort"
)

// LanguageProfile holds pricing and throughput figures for one source language.
type LanguageProfile struct {
	Code         string
	RatePerChar  float64
	MinimumPrice float64
	CharsPerHour float64
}

// Validate checks the profile invariants.
func (p LanguageProfile) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("language code is required")
	}
	if p.CharsPerHour <= 0 {
		return fmt.Errorf("language %s: chars per hour must be positive, got %v", p.Code, p.CharsPerHour)
	}
	if p.RatePerChar < 0 || p.MinimumPrice < 0 {
		return fmt.Errorf("language %s: rate and minimum price must not be negative", p.Code)
	}
	return nil
}

// RateTable is an immutable set of language profiles keyed by language code.
type RateTable struct {
	profiles map[string]LanguageProfile
}

// NewRateTable builds a RateTable, validating every profile.
func NewRateTable(profiles []LanguageProfile) (*RateTable, error) {
	m := make(map[string]LanguageProfile, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m[p.Code]; dup {
			return nil, fmt.Errorf("duplicate language %s", p.Code)
		}
		m[p.Code] = p
	}
	return &RateTable{profiles: m}, nil
}

// Profile returns the profile for a language code.
func (t *RateTable) Profile(code string) (LanguageProfile, bool) {
	if t == nil {
		return LanguageProfile{}, false
	}
	p, ok := t.profiles[code]
	return p, ok
}

// Len returns the number of configured languages.
func (t *RateTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.profiles)
}

// Profiles returns all profiles ordered by language code.
func (t *RateTable) Profiles() []LanguageProfile {
	if t == nil {
		return nil
	}
	out := make([]LanguageProfile, 0, len(t.profiles))
	for _, p := range t.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
