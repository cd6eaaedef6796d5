// Package trackertest provides an in-memory tracker for UI tests.
package trackertest

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/proyo/internal/progress"
	"github.com/abhisek/proyo/internal/tracker"
)

// MemStore keeps the progress document in memory.
type MemStore struct {
	mu    sync.Mutex
	state *progress.State
}

func (m *MemStore) Load(context.Context) (*progress.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return nil, nil
	}
	st := m.state.Clone()
	return &st, nil
}

func (m *MemStore) Save(_ context.Context, s progress.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := s.Clone()
	m.state = &st
	return nil
}

func (m *MemStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil
	return nil
}

// New returns a tracker over a fresh MemStore with no collaborators.
func New(t testing.TB, opts ...tracker.Option) *tracker.Service {
	t.Helper()
	svc := tracker.New(&MemStore{}, opts...)
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

// Onboarded returns a tracker whose user has the default plan.
func Onboarded(t testing.TB, name string, opts ...tracker.Option) *tracker.Service {
	t.Helper()
	svc := New(t, opts...)
	_, err := svc.Onboard(context.Background(), name, progress.Goals{Objective: "Ser constante"})
	require.NoError(t, err)
	return svc
}
