package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNomineeSuperlative() *Superlative {
	return &Superlative{
		ID:    "s1",
		Title: "Worst Parking, Consistently",
		Nominees: []*Nominee{
			{ID: "a", PlayerID: 1, Odds: 150, Order: 0},
			{ID: "b", PlayerID: 2, Odds: -110, Order: 1},
		},
		Votes:          make(map[int64]string),
		VotingClosesAt: time.Now().Add(time.Hour),
		CreatedAt:      time.Now(),
	}
}

func TestSuperlative_DecideWinner(t *testing.T) {
	t.Run("most votes wins", func(t *testing.T) {
		s := twoNomineeSuperlative()
		s.Votes = map[int64]string{10: "b", 11: "b", 12: "a"}
		winner := s.DecideWinner()
		require.NotNil(t, winner)
		assert.Equal(t, "b", winner.ID)
	})

	t.Run("exact tie breaks to lowest order", func(t *testing.T) {
		s := twoNomineeSuperlative()
		s.Votes = map[int64]string{10: "a", 11: "b"}
		winner := s.DecideWinner()
		require.NotNil(t, winner)
		assert.Equal(t, "a", winner.ID)
	})

	t.Run("no votes still decides by order", func(t *testing.T) {
		s := twoNomineeSuperlative()
		winner := s.DecideWinner()
		require.NotNil(t, winner)
		assert.Equal(t, "a", winner.ID)
	})

	t.Run("no nominees", func(t *testing.T) {
		s := &Superlative{ID: "empty", Votes: make(map[int64]string)}
		assert.Nil(t, s.DecideWinner())
	})
}

func TestSuperlative_VotingOpen(t *testing.T) {
	s := twoNomineeSuperlative()
	assert.True(t, s.VotingOpen(s.VotingClosesAt.Add(-time.Minute)))
	assert.False(t, s.VotingOpen(s.VotingClosesAt))
	assert.False(t, s.VotingOpen(s.VotingClosesAt.Add(time.Minute)))
}

func TestSuperlative_TallyVotes(t *testing.T) {
	s := twoNomineeSuperlative()
	s.Votes = map[int64]string{10: "a", 11: "a", 12: "b"}
	tally := s.TallyVotes()
	assert.Equal(t, 2, tally["a"])
	assert.Equal(t, 1, tally["b"])
}
