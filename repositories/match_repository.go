package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var (
	// ErrMatchNotFound is returned when the referenced match row does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchAlreadyDecided is returned by ReportResult when the match exists
	// but its outcome was no longer TBD at write time. It is an expected
	// outcome of two reporters racing, not an infrastructure fault.
	ErrMatchAlreadyDecided = errors.New("match already decided")
)

type MatchRepository interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByLeague(ctx context.Context, leagueID int) ([]*models.Match, error)
	ListByUser(ctx context.Context, userID int) ([]*models.Match, error)
	// ReportResult applies the result only if the stored outcome is still TBD.
	// All result columns are written together or not at all; a zero-row update
	// is resolved to either ErrMatchNotFound or ErrMatchAlreadyDecided.
	ReportResult(ctx context.Context, id int, result *models.MatchResult) error
	// UpdateResult overwrites the result unconditionally (admin correction).
	UpdateResult(ctx context.Context, id int, result *models.MatchResult) error
	// ClearResult returns the match to the undecided state.
	ClearResult(ctx context.Context, id int) error
	// CountByLeague returns the total number of matches in a league and how
	// many of them are still undecided.
	CountByLeague(ctx context.Context, leagueID int) (total int, undecided int, err error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	m.id, m.league_id, m.player1_id, m.player2_id, m.round,
	m.score1, m.score2, m.outcome, m.decided_at, m.created_at,
	p1.id, p1.name, p1.email, p1.privileges, p1.created_at,
	p2.id, p2.name, p2.email, p2.privileges, p2.created_at`

const matchFrom = `
	FROM matches m
	JOIN users p1 ON m.player1_id = p1.id
	JOIN users p2 ON m.player2_id = p2.id`

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchColumns + matchFrom + ` WHERE m.id = $1`

	match, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByLeague(ctx context.Context, leagueID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchFrom + `
		WHERE m.league_id = $1
		ORDER BY m.round ASC, m.id ASC`

	return r.queryMatches(ctx, query, leagueID)
}

func (r *postgresMatchRepository) ListByUser(ctx context.Context, userID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchFrom + `
		WHERE m.player1_id = $1 OR m.player2_id = $1
		ORDER BY m.round ASC, m.id ASC`

	return r.queryMatches(ctx, query, userID)
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, arg interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, match)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

// ReportResult is the single synchronization point for first-time score
// reporting: the outcome precondition is checked and the three result columns
// are applied in one statement, so of any number of concurrent reporters at
// most one can win.
func (r *postgresMatchRepository) ReportResult(ctx context.Context, id int, result *models.MatchResult) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, outcome = $3, decided_at = $4
		WHERE id = $5 AND outcome = $6`

	res, err := r.db.ExecContext(ctx, query,
		result.Score1,
		result.Score2,
		result.Outcome,
		result.Date,
		id,
		models.OutcomeTBD,
	)
	if err != nil {
		return fmt.Errorf("failed to report result for match %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Zero rows means either the match does not exist or the precondition
	// failed. The two must not be conflated: the first is a 404, the second a
	// legitimate lost race.
	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to probe match %d after rejected report: %w", id, err)
	}
	if !exists {
		return ErrMatchNotFound
	}
	return ErrMatchAlreadyDecided
}

func (r *postgresMatchRepository) UpdateResult(ctx context.Context, id int, result *models.MatchResult) error {
	query := `
		UPDATE matches
		SET score1 = $1, score2 = $2, outcome = $3, decided_at = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, query,
		result.Score1,
		result.Score2,
		result.Outcome,
		result.Date,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update result for match %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ClearResult(ctx context.Context, id int) error {
	query := `
		UPDATE matches
		SET score1 = NULL, score2 = NULL, outcome = $1, decided_at = NULL
		WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, models.OutcomeTBD, id)
	if err != nil {
		return fmt.Errorf("failed to clear result for match %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByLeague(ctx context.Context, leagueID int) (int, int, error) {
	var total, undecided int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE outcome = $2) FROM matches WHERE league_id = $1`,
		leagueID, models.OutcomeTBD,
	).Scan(&total, &undecided)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count matches for league %d: %w", leagueID, err)
	}
	return total, undecided, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMatch folds the nullable result columns into either a nil Result or a
// complete one, so the rest of the code never sees a half-decided match.
func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		match   models.Match
		p1, p2  models.User
		score1  sql.NullInt64
		score2  sql.NullInt64
		outcome models.Outcome
		decided sql.NullTime
	)

	err := row.Scan(
		&match.ID,
		&match.LeagueID,
		&match.Player1ID,
		&match.Player2ID,
		&match.Round,
		&score1,
		&score2,
		&outcome,
		&decided,
		&match.CreatedAt,
		&p1.ID,
		&p1.Name,
		&p1.Email,
		&p1.Privileges,
		&p1.CreatedAt,
		&p2.ID,
		&p2.Name,
		&p2.Email,
		&p2.Privileges,
		&p2.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if outcome != models.OutcomeTBD {
		if !score1.Valid || !score2.Valid || !decided.Valid {
			return nil, fmt.Errorf("match %d has outcome %s but incomplete result columns", match.ID, outcome)
		}
		match.Result = &models.MatchResult{
			Outcome: outcome,
			Score1:  int(score1.Int64),
			Score2:  int(score2.Int64),
			Date:    decided.Time,
		}
	}

	match.Player1 = &p1
	match.Player2 = &p2
	return &match, nil
}
