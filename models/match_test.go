package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveOutcome(t *testing.T) {
	for s1 := 0; s1 <= 3; s1++ {
		for s2 := 0; s2+s1 <= 3; s2++ {
			got := DeriveOutcome(s1, s2)
			switch {
			case s1 > s2:
				assert.Equal(t, OutcomePlayer1Wins, got, "%d-%d", s1, s2)
			case s2 > s1:
				assert.Equal(t, OutcomePlayer2Wins, got, "%d-%d", s1, s2)
			default:
				assert.Equal(t, OutcomeDraw, got, "%d-%d", s1, s2)
			}
		}
	}
}

func TestNewMatchResult(t *testing.T) {
	now := time.Now()
	result := NewMatchResult(2, 1, now)

	require.NotNil(t, result)
	assert.Equal(t, OutcomePlayer1Wins, result.Outcome)
	assert.Equal(t, 2, result.Score1)
	assert.Equal(t, 1, result.Score2)
	assert.Equal(t, now, result.Date)
}

func TestMatchStateAccessors(t *testing.T) {
	match := &Match{ID: 5, Player1ID: 1, Player2ID: 2}

	assert.False(t, match.IsDecided())
	assert.Equal(t, OutcomeTBD, match.Outcome())
	assert.True(t, match.HasPlayer(1))
	assert.True(t, match.HasPlayer(2))
	assert.False(t, match.HasPlayer(3))

	match.Result = NewMatchResult(1, 1, time.Now())
	assert.True(t, match.IsDecided())
	assert.Equal(t, OutcomeDraw, match.Outcome())
}
