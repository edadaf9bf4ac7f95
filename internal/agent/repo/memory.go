package repo

import (
	"context"
	"sync"

	"github.com/kdhyo/ledger-ai/internal/agent/model"
)

// MemoryTranscript is the in-process TranscriptRepository used when no
// Redis is configured, and in tests.
type MemoryTranscript struct {
	mu    sync.Mutex
	turns map[string][]model.Turn
}

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{turns: make(map[string][]model.Turn)}
}

func (m *MemoryTranscript) AddTurn(_ context.Context, sessionID string, turn model.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := append(m.turns[sessionID], turn)
	if len(turns) > maxStoredTurns {
		turns = turns[len(turns)-maxStoredTurns:]
	}
	m.turns[sessionID] = turns
	return nil
}

func (m *MemoryTranscript) Recent(_ context.Context, sessionID string, n int) ([]model.Turn, error) {
	if n <= 0 {
		return nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := m.turns[sessionID]
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]model.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (m *MemoryTranscript) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.turns, sessionID)
	return nil
}
