package metrics

import (
	"context"
	"sync"
)

// Memory keeps counters in process. It never expires anything and is meant
// for tests and local runs.
type Memory struct {
	mu         sync.Mutex
	byOutcome  map[Outcome]int64
	byLanguage map[string]int64
}

// NewMemory creates an empty Memory recorder.
func NewMemory() *Memory {
	return &Memory{
		byOutcome:  make(map[Outcome]int64),
		byLanguage: make(map[string]int64),
	}
}

// Record implements Recorder.
func (m *Memory) Record(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byOutcome[ev.Outcome]++
	if ev.Language != "" {
		m.byLanguage[ev.Language+":"+string(ev.Outcome)]++
	}
	return nil
}

// Count returns the number of events with the given outcome.
func (m *Memory) Count(outcome Outcome) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byOutcome[outcome]
}

// LanguageCount returns the number of events for a language with the given outcome.
func (m *Memory) LanguageCount(language string, outcome Outcome) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byLanguage[language+":"+string(outcome)]
}
