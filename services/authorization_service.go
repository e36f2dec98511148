package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
)

// AuthorizationService decides whether a caller may report, correct or revert
// a match score. The decisions are side-effect free apart from the read needed
// to resolve league ownership.
type AuthorizationService interface {
	// CanReportScore allows only the two participants to submit the first
	// score, and only while the match is undecided. Privilege grants no
	// shortcut here: nobody is handed a score by a third party while none
	// exists yet.
	CanReportScore(auth models.AuthContext, match *models.Match) bool

	// CanManageMatch reports whether the caller is a global admin or the
	// owner of the match's league. Ownership is per-league and re-resolved on
	// every call.
	CanManageMatch(ctx context.Context, auth models.AuthContext, leagueID int) (bool, error)
}

type authorizationService struct {
	leagueRepo repositories.LeagueRepository
}

func NewAuthorizationService(leagueRepo repositories.LeagueRepository) AuthorizationService {
	return &authorizationService{leagueRepo: leagueRepo}
}

func (s *authorizationService) CanReportScore(auth models.AuthContext, match *models.Match) bool {
	return match.HasPlayer(auth.UserID) && !match.IsDecided()
}

func (s *authorizationService) CanManageMatch(ctx context.Context, auth models.AuthContext, leagueID int) (bool, error) {
	if auth.IsAdmin() {
		return true, nil
	}

	ownerID, err := s.leagueRepo.GetOwnerID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, repositories.ErrLeagueNotFound) {
			return false, ErrLeagueNotFound
		}
		return false, fmt.Errorf("failed to resolve league owner: %w", err)
	}
	return ownerID == auth.UserID, nil
}
