package service

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/model"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
	"github.com/d60-Lab/foodgram-backend/internal/storage"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

type RegisterInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*UserProfile, error)
	GetProfile(ctx context.Context, id, viewerID uint) (*UserProfile, error)
	ListProfiles(ctx context.Context, viewerID uint, offset, limit int) ([]UserProfile, int64, error)
	SetPassword(ctx context.Context, userID uint, current, next string) error
	// SetAvatar decodes and stores the base64 image, returning its URL.
	SetAvatar(ctx context.Context, userID uint, dataURI string) (string, error)
	DeleteAvatar(ctx context.Context, userID uint) error
}

type userService struct {
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	images        *storage.ImageStore
}

func NewUserService(users repository.UserRepository, subscriptions repository.SubscriptionRepository, images *storage.ImageStore) UserService {
	return &userService{users: users, subscriptions: subscriptions, images: images}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*UserProfile, error) {
	if !usernameRe.MatchString(in.Username) {
		return nil, apperr.Field(apperr.KindInvalidField, "username",
			"username may contain only letters, digits and .@+- characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:     in.Email,
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.New(apperr.KindAlreadyExists,
				"a user with this email or username already exists")
		}
		return nil, err
	}
	p := newUserProfile(user, false)
	return &p, nil
}

func (s *userService) GetProfile(ctx context.Context, id, viewerID uint) (*UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "user not found")
		}
		return nil, err
	}
	subscribed, err := s.isSubscribed(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	p := newUserProfile(user, subscribed)
	return &p, nil
}

func (s *userService) ListProfiles(ctx context.Context, viewerID uint, offset, limit int) ([]UserProfile, int64, error) {
	users, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	profiles := make([]UserProfile, len(users))
	for i := range users {
		subscribed, err := s.isSubscribed(ctx, viewerID, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		profiles[i] = newUserProfile(&users[i], subscribed)
	}
	return profiles, total, nil
}

func (s *userService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return apperr.Field(apperr.KindInvalidField, "current_password", "wrong password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *userService) SetAvatar(ctx context.Context, userID uint, dataURI string) (string, error) {
	url, err := s.images.Save("avatars", dataURI)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdateAvatar(ctx, userID, &url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *userService) DeleteAvatar(ctx context.Context, userID uint) error {
	return s.users.UpdateAvatar(ctx, userID, nil)
}

func (s *userService) isSubscribed(ctx context.Context, viewerID, authorID uint) (bool, error) {
	if viewerID == 0 || viewerID == authorID {
		return false, nil
	}
	return s.subscriptions.Exists(ctx, viewerID, authorID)
}
