package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

// IdentityClaims is what the external identity provider asserts about a
// caller after its token has been verified.
type IdentityClaims struct {
	Subject string
	Email   string
	Name    string
}

// TokenVerifier abstracts the identity provider. Implementations verify a raw
// ID token and return the claims it carries, or an error for an invalid,
// expired or mis-audienced token.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*IdentityClaims, error)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	// LoginWithIDToken verifies a provider token and resolves it to a local
	// user, provisioning one with USER privileges on first login.
	LoginWithIDToken(ctx context.Context, rawToken string) (*models.User, error)

	// Login is the local email/password path for accounts created without the
	// identity provider.
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	verifier TokenVerifier
}

func NewAuthService(userRepo repositories.UserRepository, verifier TokenVerifier) AuthService {
	return &authService{
		userRepo: userRepo,
		verifier: verifier,
	}
}

func (s *authService) LoginWithIDToken(ctx context.Context, rawToken string) (*models.User, error) {
	claims, err := s.verifier.VerifyIDToken(ctx, rawToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIdentityTokenInvalid, err)
	}
	if claims.Email == "" {
		return nil, ErrIdentityTokenInvalid
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err == nil {
		user.PasswordHash = nil
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	name := claims.Name
	if name == "" {
		name = strings.SplitN(claims.Email, "@", 2)[0]
	}
	user = &models.User{
		Name:       name,
		Email:      claims.Email,
		Privileges: models.PrivilegesUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			// Lost a provisioning race with a concurrent first login.
			return s.userRepo.GetByEmail(ctx, claims.Email)
		}
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if user.PasswordHash == nil {
		// Provider-provisioned account, no local password set.
		return nil, ErrAuthInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = nil
	return user, nil
}
