package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"better-life/internal/models"
	"better-life/internal/store"
	"better-life/pkg/logger"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session is a signed-in user plus the token that references them.
type Session struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// Store is the slice of the storage capability the identity service needs.
type Store interface {
	store.UserStore
	store.SessionStore
}

// Service implements sign-up/sign-in/sign-out over an injected store; it
// holds no state of its own.
type Service struct {
	store Store
	log   *logger.Logger
}

func NewService(st Store, log *logger.Logger) *Service {
	return &Service{store: st, log: log}
}

// SignUp registers a user and opens a session for them.
func (s *Service) SignUp(ctx context.Context, email, password string, profile models.UserProfile) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile.Email = email
	created, err := s.store.CreateUser(ctx, profile, hash)
	if errors.Is(err, store.ErrDuplicateEmail) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("User registered", "user_id", created.ID)
	return s.openSession(ctx, created)
}

// SignIn checks the credentials and opens a session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	profile, hash, err := s.store.UserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, profile)
}

// SignOut discards the session. Unknown tokens are not an error.
func (s *Service) SignOut(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, token)
}

// UserFromToken resolves a session token to its user profile.
func (s *Service) UserFromToken(ctx context.Context, token string) (models.UserProfile, error) {
	if token == "" {
		return models.UserProfile{}, ErrInvalidSession
	}

	profile, err := s.store.UserBySession(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return models.UserProfile{}, ErrInvalidSession
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to resolve session: %w", err)
	}
	return profile, nil
}

func (s *Service) openSession(ctx context.Context, profile models.UserProfile) (*Session, error) {
	token := uuid.NewString()
	if err := s.store.SaveSession(ctx, token, profile.ID); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &Session{Token: token, User: profile}, nil
}
