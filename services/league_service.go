package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/standings"
	"golang.org/x/sync/errgroup"
)

// LeagueView is the response of the league page: the league itself, its
// matches sorted by round, and the standings computed over the decided ones.
type LeagueView struct {
	League    *models.League    `json:"league"`
	Matches   []*models.Match   `json:"matches"`
	Standings []standings.Entry `json:"standings"`
}

type LeagueService interface {
	// GetLeagueView is restricted to members of the league: its owner, or any
	// user appearing as a player in one of its matches.
	GetLeagueView(ctx context.Context, auth models.AuthContext, leagueID int) (*LeagueView, error)
	ListUserLeagues(ctx context.Context, auth models.AuthContext) ([]*models.League, error)
	// AutoUpdateLeagueStatusesByDates activates scheduled leagues whose start
	// date has passed and completes active leagues with no undecided matches
	// left. Called periodically from the scheduler in cmd/main.go.
	AutoUpdateLeagueStatusesByDates(ctx context.Context) error
}

type leagueService struct {
	leagueRepo repositories.LeagueRepository
	matchRepo  repositories.MatchRepository
	logger     *slog.Logger
}

func NewLeagueService(
	leagueRepo repositories.LeagueRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) LeagueService {
	return &leagueService{
		leagueRepo: leagueRepo,
		matchRepo:  matchRepo,
		logger:     logger,
	}
}

func (s *leagueService) GetLeagueView(ctx context.Context, auth models.AuthContext, leagueID int) (*LeagueView, error) {
	var (
		league  *models.League
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		league, err = s.leagueRepo.GetByID(gCtx, leagueID)
		if err != nil {
			if errors.Is(err, repositories.ErrLeagueNotFound) {
				return ErrLeagueNotFound
			}
			return fmt.Errorf("failed to load league %d: %w", leagueID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByLeague(gCtx, leagueID)
		if err != nil {
			return fmt.Errorf("failed to load matches of league %d: %w", leagueID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !isLeagueMember(auth, league, matches) {
		return nil, ErrNotLeagueMember
	}

	// Matches come from the repository already ordered by round ascending.
	return &LeagueView{
		League:    league,
		Matches:   matches,
		Standings: standings.Calculate(matches),
	}, nil
}

func isLeagueMember(auth models.AuthContext, league *models.League, matches []*models.Match) bool {
	if league.OwnerID == auth.UserID {
		return true
	}
	for _, match := range matches {
		if match.HasPlayer(auth.UserID) {
			return true
		}
	}
	return false
}

func (s *leagueService) ListUserLeagues(ctx context.Context, auth models.AuthContext) ([]*models.League, error) {
	leagues, err := s.leagueRepo.ListForUser(ctx, auth.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues for user %d: %w", auth.UserID, err)
	}
	return leagues, nil
}

func (s *leagueService) AutoUpdateLeagueStatusesByDates(ctx context.Context) error {
	now := time.Now().UTC()

	scheduled, err := s.leagueRepo.ListByStatus(ctx, models.LeagueStatusScheduled)
	if err != nil {
		return fmt.Errorf("failed to list scheduled leagues: %w", err)
	}
	for _, league := range scheduled {
		if league.StartDate.After(now) {
			continue
		}
		if err := s.leagueRepo.UpdateStatus(ctx, league.ID, models.LeagueStatusActive); err != nil {
			s.logger.Error("failed to activate league", slog.Int("league_id", league.ID), slog.Any("error", err))
			continue
		}
		s.logger.Info("league activated", slog.Int("league_id", league.ID))
	}

	active, err := s.leagueRepo.ListByStatus(ctx, models.LeagueStatusActive)
	if err != nil {
		return fmt.Errorf("failed to list active leagues: %w", err)
	}
	for _, league := range active {
		total, undecided, err := s.matchRepo.CountByLeague(ctx, league.ID)
		if err != nil {
			s.logger.Error("failed to count league matches", slog.Int("league_id", league.ID), slog.Any("error", err))
			continue
		}
		if total == 0 || undecided > 0 {
			continue
		}
		if err := s.leagueRepo.UpdateStatus(ctx, league.ID, models.LeagueStatusCompleted); err != nil {
			s.logger.Error("failed to complete league", slog.Int("league_id", league.ID), slog.Any("error", err))
			continue
		}
		s.logger.Info("league completed", slog.Int("league_id", league.ID))
	}

	return nil
}
