package models

import "time"

// Outcome corresponds to the match_outcome ENUM in the database.
type Outcome string

const (
	OutcomeTBD         Outcome = "TBD"
	OutcomePlayer1Wins Outcome = "PLAYER1_WINS"
	OutcomePlayer2Wins Outcome = "PLAYER2_WINS"
	OutcomeDraw        Outcome = "DRAW"
)

// MaxGamesPerMatch limits score1+score2 for a best-of-three match.
const MaxGamesPerMatch = 3

// MatchResult carries everything a decided match has and an undecided one has
// not: the outcome, both scores, and the decision time. A match holds either a
// nil Result (undecided, outcome TBD) or a complete one; the fields are never
// persisted or exposed separately.
type MatchResult struct {
	Outcome Outcome   `json:"outcome"`
	Score1  int       `json:"score1"`
	Score2  int       `json:"score2"`
	Date    time.Time `json:"date"`
}

// NewMatchResult derives the outcome from the score pair and stamps the
// decision time. Scores are assumed validated by the caller.
func NewMatchResult(score1, score2 int, date time.Time) *MatchResult {
	return &MatchResult{
		Outcome: DeriveOutcome(score1, score2),
		Score1:  score1,
		Score2:  score2,
		Date:    date,
	}
}

// DeriveOutcome is the single place the score pair is turned into an outcome.
func DeriveOutcome(score1, score2 int) Outcome {
	switch {
	case score1 > score2:
		return OutcomePlayer1Wins
	case score2 > score1:
		return OutcomePlayer2Wins
	default:
		return OutcomeDraw
	}
}

type Match struct {
	ID        int          `json:"id"`
	LeagueID  int          `json:"league_id"`
	Player1ID int          `json:"player1_id"`
	Player2ID int          `json:"player2_id"`
	Round     int          `json:"round"`
	Result    *MatchResult `json:"result,omitempty"`
	CreatedAt time.Time    `json:"created_at"`

	// Optional linked entities, populated by repositories on reads.
	Player1 *User   `json:"player1,omitempty"`
	Player2 *User   `json:"player2,omitempty"`
	League  *League `json:"league,omitempty"`
}

// Outcome returns the stored outcome, or OutcomeTBD for an undecided match.
func (m *Match) Outcome() Outcome {
	if m.Result == nil {
		return OutcomeTBD
	}
	return m.Result.Outcome
}

func (m *Match) IsDecided() bool {
	return m.Result != nil
}

func (m *Match) HasPlayer(userID int) bool {
	return m.Player1ID == userID || m.Player2ID == userID
}
