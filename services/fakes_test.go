package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

// fakeMatchRepo is an in-memory MatchRepository with the same conditional
// write semantics as the postgres implementation.
type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[int]*models.Match

	// staleReads makes the next N GetByID calls report the match as still
	// undecided, simulating a reporter racing ahead of this caller.
	staleReads int
	// reportErr forces ReportResult to fail with an infrastructure error.
	reportErr error
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	repo := &fakeMatchRepo{matches: make(map[int]*models.Match)}
	for _, m := range matches {
		repo.matches[m.ID] = m
	}
	return repo
}

func (r *fakeMatchRepo) GetByID(ctx context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	if r.staleReads > 0 {
		r.staleReads--
		copied.Result = nil
	}
	return &copied, nil
}

func (r *fakeMatchRepo) ListByLeague(ctx context.Context, leagueID int) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.LeagueID == leagueID {
			copied := *m
			matches = append(matches, &copied)
		}
	}
	sortMatches(matches)
	return matches, nil
}

func (r *fakeMatchRepo) ListByUser(ctx context.Context, userID int) ([]*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*models.Match, 0)
	for _, m := range r.matches {
		if m.HasPlayer(userID) {
			copied := *m
			matches = append(matches, &copied)
		}
	}
	sortMatches(matches)
	return matches, nil
}

func (r *fakeMatchRepo) ReportResult(ctx context.Context, id int, result *models.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.reportErr != nil {
		return r.reportErr
	}
	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	if match.Result != nil {
		return repositories.ErrMatchAlreadyDecided
	}
	match.Result = result
	return nil
}

func (r *fakeMatchRepo) UpdateResult(ctx context.Context, id int, result *models.MatchResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Result = result
	return nil
}

func (r *fakeMatchRepo) ClearResult(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	match, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	match.Result = nil
	return nil
}

func (r *fakeMatchRepo) CountByLeague(ctx context.Context, leagueID int) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total, undecided := 0, 0
	for _, m := range r.matches {
		if m.LeagueID != leagueID {
			continue
		}
		total++
		if m.Result == nil {
			undecided++
		}
	}
	return total, undecided, nil
}

func sortMatches(matches []*models.Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].ID < matches[j].ID
	})
}

type fakeLeagueRepo struct {
	mu      sync.Mutex
	leagues map[int]*models.League
}

func newFakeLeagueRepo(leagues ...*models.League) *fakeLeagueRepo {
	repo := &fakeLeagueRepo{leagues: make(map[int]*models.League)}
	for _, l := range leagues {
		repo.leagues[l.ID] = l
	}
	return repo
}

func (r *fakeLeagueRepo) GetByID(ctx context.Context, id int) (*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	league, ok := r.leagues[id]
	if !ok {
		return nil, repositories.ErrLeagueNotFound
	}
	copied := *league
	return &copied, nil
}

func (r *fakeLeagueRepo) GetOwnerID(ctx context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	league, ok := r.leagues[id]
	if !ok {
		return 0, repositories.ErrLeagueNotFound
	}
	return league.OwnerID, nil
}

func (r *fakeLeagueRepo) ListForUser(ctx context.Context, userID int) ([]*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	leagues := make([]*models.League, 0)
	for _, l := range r.leagues {
		if l.OwnerID == userID {
			copied := *l
			leagues = append(leagues, &copied)
		}
	}
	return leagues, nil
}

func (r *fakeLeagueRepo) ListByStatus(ctx context.Context, status models.LeagueStatus) ([]*models.League, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	leagues := make([]*models.League, 0)
	for _, l := range r.leagues {
		if l.Status == status {
			copied := *l
			leagues = append(leagues, &copied)
		}
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].ID < leagues[j].ID })
	return leagues, nil
}

func (r *fakeLeagueRepo) UpdateStatus(ctx context.Context, id int, status models.LeagueStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	league, ok := r.leagues[id]
	if !ok {
		return repositories.ErrLeagueNotFound
	}
	league.Status = status
	return nil
}

func testMatch(id, leagueID, player1ID, player2ID, round int) *models.Match {
	return &models.Match{
		ID:        id,
		LeagueID:  leagueID,
		Player1ID: player1ID,
		Player2ID: player2ID,
		Round:     round,
		CreatedAt: time.Now(),
	}
}
