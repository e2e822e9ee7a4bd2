package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/crease/internal/match"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc  func(board *match.Scoreboard, dryRun bool) error
	SendStatusChangeFunc func(m *match.Match, previous match.Status, dryRun bool) error

	// Call records
	SendMatchResultCalls []struct {
		Board  *match.Scoreboard
		DryRun bool
	}
	SendStatusChangeCalls []struct {
		Match    *match.Match
		Previous match.Status
		DryRun   bool
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendStatusChangeCalls = nil
}

func (m *Mock) SendMatchResult(ctx context.Context, board *match.Scoreboard, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Board  *match.Scoreboard
		DryRun bool
	}{board, dryRun})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(board, dryRun)
	}
	return nil
}

func (m *Mock) SendStatusChange(ctx context.Context, mt *match.Match, previous match.Status, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStatusChangeCalls = append(m.SendStatusChangeCalls, struct {
		Match    *match.Match
		Previous match.Status
		DryRun   bool
	}{mt, previous, dryRun})
	if m.SendStatusChangeFunc != nil {
		return m.SendStatusChangeFunc(mt, previous, dryRun)
	}
	return nil
}
