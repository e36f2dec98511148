package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

type MatchService interface {
	// ReportScore performs the one-time TBD to decided transition. Validation
	// and authorization run before any write; the write itself is conditional
	// on the outcome still being TBD, so of any set of concurrent reporters
	// exactly one succeeds and the rest get ErrMatchAlreadyDecided.
	ReportScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error)

	// EditScore overwrites the score of a match unconditionally. Reserved for
	// admins and the league owner; a racing edit is last-writer-wins.
	EditScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error)

	// DeleteScore reverts a decided match to the undecided, reportable state.
	// Reverting an already undecided match is an error, not a no-op.
	DeleteScore(ctx context.Context, auth models.AuthContext, matchID int) (*models.Match, error)

	ListUserMatches(ctx context.Context, auth models.AuthContext) ([]*models.Match, error)
}

type matchService struct {
	matchRepo repositories.MatchRepository
	authz     AuthorizationService
	now       func() time.Time
}

func NewMatchService(matchRepo repositories.MatchRepository, authz AuthorizationService) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		authz:     authz,
		now:       time.Now,
	}
}

// ValidateScorePair checks a best-of-three score pair. Pure, no side effects.
func ValidateScorePair(score1, score2 int) error {
	if score1 < 0 || score2 < 0 {
		return ErrScoreNegative
	}
	if score1+score2 > models.MaxGamesPerMatch {
		return ErrScoreTotalTooHigh
	}
	return nil
}

func (s *matchService) ReportScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error) {
	if err := ValidateScorePair(score1, score2); err != nil {
		return nil, err
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasPlayer(auth.UserID) {
		return nil, ErrNotMatchParticipant
	}
	if match.IsDecided() {
		return nil, ErrMatchAlreadyDecided
	}

	result := models.NewMatchResult(score1, score2, s.now().UTC())

	// The repository re-checks the TBD precondition at write time; the check
	// above only keeps obviously stale requests away from the write path.
	if err := s.matchRepo.ReportResult(ctx, matchID, result); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchAlreadyDecided):
			return nil, ErrMatchAlreadyDecided
		}
		return nil, fmt.Errorf("failed to report score for match %d: %w", matchID, err)
	}

	return s.getMatch(ctx, matchID)
}

func (s *matchService) EditScore(ctx context.Context, auth models.AuthContext, matchID, score1, score2 int) (*models.Match, error) {
	if err := ValidateScorePair(score1, score2); err != nil {
		return nil, err
	}

	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanManageMatch(ctx, auth, match.LeagueID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbiddenOperation
	}

	result := models.NewMatchResult(score1, score2, s.now().UTC())
	if err := s.matchRepo.UpdateResult(ctx, matchID, result); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to edit score for match %d: %w", matchID, err)
	}

	return s.getMatch(ctx, matchID)
}

func (s *matchService) DeleteScore(ctx context.Context, auth models.AuthContext, matchID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authz.CanManageMatch(ctx, auth, match.LeagueID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbiddenOperation
	}

	if !match.IsDecided() {
		return nil, ErrMatchNotDecided
	}

	if err := s.matchRepo.ClearResult(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to delete score for match %d: %w", matchID, err)
	}

	return s.getMatch(ctx, matchID)
}

func (s *matchService) ListUserMatches(ctx context.Context, auth models.AuthContext) ([]*models.Match, error) {
	matches, err := s.matchRepo.ListByUser(ctx, auth.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for user %d: %w", auth.UserID, err)
	}
	return matches, nil
}

func (s *matchService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to load match %d: %w", matchID, err)
	}
	return match, nil
}
