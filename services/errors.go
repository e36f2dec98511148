package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Not found
	ErrMatchNotFound  = errors.New("match not found")
	ErrLeagueNotFound = errors.New("league not found")
	ErrUserNotFound   = errors.New("user not found")

	// Validation and business rules
	ErrScoreNegative     = errors.New("scores must be non-negative")
	ErrScoreTotalTooHigh = errors.New("total games cannot exceed 3")
	ErrMatchNotDecided   = errors.New("match has no score to delete")
	ErrNameRequired      = errors.New("name is required")
	ErrUnsupportedImage  = errors.New("avatar must be a jpeg, png or webp image")

	// Conflicts. ErrMatchAlreadyDecided is the expected result of losing a
	// report race, not an infrastructure failure.
	ErrMatchAlreadyDecided = errors.New("match already has a score")
	ErrUserEmailConflict   = errors.New("email address is already in use")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrIdentityTokenInvalid   = errors.New("identity token is invalid or expired")
	ErrNotMatchParticipant    = errors.New("you are not a player in this match")
	ErrNotLeagueMember        = errors.New("you are not part of this league")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
)
