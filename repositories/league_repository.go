package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
)

var ErrLeagueNotFound = errors.New("league not found")

type LeagueRepository interface {
	GetByID(ctx context.Context, id int) (*models.League, error)
	// GetOwnerID resolves only the owning user of a league. Ownership is
	// per-league and re-read on every authorization decision.
	GetOwnerID(ctx context.Context, id int) (int, error)
	// ListForUser returns the leagues the user owns or plays in.
	ListForUser(ctx context.Context, userID int) ([]*models.League, error)
	ListByStatus(ctx context.Context, status models.LeagueStatus) ([]*models.League, error)
	UpdateStatus(ctx context.Context, id int, status models.LeagueStatus) error
}

type postgresLeagueRepository struct {
	db *sql.DB
}

func NewPostgresLeagueRepository(db *sql.DB) LeagueRepository {
	return &postgresLeagueRepository{db: db}
}

const leagueColumns = `id, name, status, owner_id, start_date, created_at`

func (r *postgresLeagueRepository) GetByID(ctx context.Context, id int) (*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE id = $1`

	league, err := scanLeague(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("failed to scan league by id %d: %w", id, err)
	}
	return league, nil
}

func (r *postgresLeagueRepository) GetOwnerID(ctx context.Context, id int) (int, error) {
	var ownerID int
	err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM leagues WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrLeagueNotFound
		}
		return 0, fmt.Errorf("failed to resolve owner of league %d: %w", id, err)
	}
	return ownerID, nil
}

func (r *postgresLeagueRepository) ListForUser(ctx context.Context, userID int) ([]*models.League, error) {
	query := `
		SELECT DISTINCT l.id, l.name, l.status, l.owner_id, l.start_date, l.created_at
		FROM leagues l
		LEFT JOIN matches m ON m.league_id = l.id
		WHERE l.owner_id = $1 OR m.player1_id = $1 OR m.player2_id = $1
		ORDER BY l.created_at DESC, l.id DESC`

	return r.queryLeagues(ctx, query, userID)
}

func (r *postgresLeagueRepository) ListByStatus(ctx context.Context, status models.LeagueStatus) ([]*models.League, error) {
	query := `SELECT ` + leagueColumns + ` FROM leagues WHERE status = $1 ORDER BY id ASC`
	return r.queryLeagues(ctx, query, status)
}

func (r *postgresLeagueRepository) UpdateStatus(ctx context.Context, id int, status models.LeagueStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE leagues SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of league %d: %w", id, err)
	}
	return checkAffectedRows(res, ErrLeagueNotFound)
}

func (r *postgresLeagueRepository) queryLeagues(ctx context.Context, query string, arg interface{}) ([]*models.League, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]*models.League, 0)
	for rows.Next() {
		league, scanErr := scanLeague(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan league row: %w", scanErr)
		}
		leagues = append(leagues, league)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during league rows iteration: %w", err)
	}
	return leagues, nil
}

func scanLeague(row rowScanner) (*models.League, error) {
	var league models.League
	err := row.Scan(
		&league.ID,
		&league.Name,
		&league.Status,
		&league.OwnerID,
		&league.StartDate,
		&league.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &league, nil
}
