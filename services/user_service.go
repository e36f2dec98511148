package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/repositories"
	"github.com/Dosada05/league-system/storage"
)

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UserService interface {
	GetProfile(ctx context.Context, userID int) (*models.User, error)
	UpdateName(ctx context.Context, auth models.AuthContext, name string) (*models.User, error)
	UpdateAvatar(ctx context.Context, auth models.AuthContext, contentType string, file io.Reader) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	uploader storage.FileUploader
}

func NewUserService(userRepo repositories.UserRepository, uploader storage.FileUploader) UserService {
	return &userService{
		userRepo: userRepo,
		uploader: uploader,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	s.present(user)
	return user, nil
}

func (s *userService) UpdateName(ctx context.Context, auth models.AuthContext, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if err := s.userRepo.UpdateName(ctx, auth.UserID, name); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update name of user %d: %w", auth.UserID, err)
	}
	return s.GetProfile(ctx, auth.UserID)
}

func (s *userService) UpdateAvatar(ctx context.Context, auth models.AuthContext, contentType string, file io.Reader) (*models.User, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	user, err := s.userRepo.GetByID(ctx, auth.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", auth.UserID, err)
	}

	key := fmt.Sprintf("avatars/user_%d%s", auth.UserID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for user %d: %w", auth.UserID, err)
	}

	// Remove the previous object when the extension changed, otherwise the
	// upload above already overwrote it.
	if user.AvatarKey != nil && *user.AvatarKey != result.Key {
		if delErr := s.uploader.Delete(ctx, *user.AvatarKey); delErr != nil {
			// Stale object is harmless, the row still points at the new key.
			fmt.Printf("failed to delete old avatar %s: %v\n", *user.AvatarKey, delErr)
		}
	}

	if err := s.userRepo.UpdateAvatarKey(ctx, auth.UserID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store avatar key for user %d: %w", auth.UserID, err)
	}
	return s.GetProfile(ctx, auth.UserID)
}

func (s *userService) present(user *models.User) {
	user.PasswordHash = nil
	if user.AvatarKey != nil {
		url := s.uploader.GetPublicURL(*user.AvatarKey)
		user.AvatarURL = &url
	}
}
