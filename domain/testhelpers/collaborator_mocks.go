package testhelpers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/entities"
	"github.com/aaronjullger-lgtm/minibeasts-sub002/domain/interfaces"
)

// MockPhaseClock is a mock implementation of PhaseClock
type MockPhaseClock struct {
	mock.Mock
}

func (m *MockPhaseClock) CurrentPhase() interfaces.Phase {
	args := m.Called()
	return args.Get(0).(interfaces.Phase)
}

func (m *MockPhaseClock) PhaseEnd(phase interfaces.Phase) time.Time {
	args := m.Called(phase)
	return args.Get(0).(time.Time)
}

// FixedPhaseClock always reports the same phase. Simpler than a mock for
// tests that just need the gate open or closed.
type FixedPhaseClock struct {
	Phase interfaces.Phase
	End   time.Time
}

func (c FixedPhaseClock) CurrentPhase() interfaces.Phase {
	return c.Phase
}

func (c FixedPhaseClock) PhaseEnd(phase interfaces.Phase) time.Time {
	return c.End
}

// MockChatStore is a mock implementation of ChatStore
type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) MessagesBetween(ctx context.Context, start, end time.Time) ([]entities.ChatMessage, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ChatMessage), args.Error(1)
}

// MockOracle is a mock implementation of Oracle
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) ChatTrends(ctx context.Context, transcript []entities.ChatMessage) ([]string, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockOracle) AmbushProp(ctx context.Context, targetID int64, transcript []entities.ChatMessage) (*interfaces.SuggestedProp, error) {
	args := m.Called(ctx, targetID, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SuggestedProp), args.Error(1)
}

func (m *MockOracle) Superlative(ctx context.Context, transcript []entities.ChatMessage) (*interfaces.SuggestedSuperlative, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SuggestedSuperlative), args.Error(1)
}

func (m *MockOracle) RedemptionBet(ctx context.Context, playerID int64) (*entities.RedemptionBet, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.RedemptionBet), args.Error(1)
}

// SequenceRand returns a fixed sequence of samples, then repeats the final
// one. Deterministic stand-in for the randomness source.
type SequenceRand struct {
	Samples []float64
	next    int
}

func (r *SequenceRand) Float64() float64 {
	if len(r.Samples) == 0 {
		return 0
	}
	sample := r.Samples[r.next]
	if r.next < len(r.Samples)-1 {
		r.next++
	}
	return sample
}
