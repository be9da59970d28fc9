package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
	"github.com/d60-Lab/foodgram-backend/internal/cache"
	"github.com/d60-Lab/foodgram-backend/internal/repository"
)

// TokenClaims is what the auth middleware extracts from a bearer token.
type TokenClaims struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

type AuthService interface {
	// Login checks credentials and issues a signed JWT.
	Login(ctx context.Context, email, password string) (string, error)
	// Logout denylists the token until its natural expiry.
	Logout(ctx context.Context, token string) error
	// Verify parses and validates a token, rejecting denylisted ones.
	Verify(ctx context.Context, token string) (*TokenClaims, error)
}

type authService struct {
	users    repository.UserRepository
	denylist *cache.TokenDenylist
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(users repository.UserRepository, denylist *cache.TokenDenylist, secret string, ttl time.Duration) AuthService {
	return &authService{users: users, denylist: denylist, secret: []byte(secret), ttl: ttl}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.New(apperr.KindInvalidField, "unable to log in with provided credentials")
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", apperr.New(apperr.KindInvalidField, "unable to log in with provided credentials")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(user.ID), 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}
	return s.denylist.Deny(ctx, claims.JTI, claims.ExpiresAt)
}

func (s *authService) Verify(ctx context.Context, token string) (*TokenClaims, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid or expired token")
	}
	if s.denylist.IsDenied(ctx, claims.ID) {
		return nil, apperr.New(apperr.KindUnauthorized, "token has been revoked")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token subject")
	}
	return &TokenClaims{
		UserID:    uint(userID),
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
