package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vedran77/messagely/internal/auth"
	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/metrics"
)

var (
	ErrInvalidCredentials = errors.New("invalid username/password")
	// ErrNoSession means the user was stored but no session could be
	// started; the caller should log in rather than register again.
	ErrNoSession = errors.New("registered but session not started")
)

// AuthService turns a successful registration or login into a session.
type AuthService struct {
	identity *IdentityService
	tokens   *auth.TokenManager
	metrics  *metrics.Recorder
}

func NewAuthService(identity *IdentityService, tokens *auth.TokenManager, recorder *metrics.Recorder) *AuthService {
	return &AuthService{
		identity: identity,
		tokens:   tokens,
		metrics:  recorder,
	}
}

type Session struct {
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	LoginTimestamp time.Time `json:"login_timestamp"`
}

// Register creates the user and logs them in.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (Session, error) {
	profile, err := s.identity.Register(ctx, input)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			s.metrics.Registration(metrics.OutcomeConflict)
		} else {
			s.metrics.Registration(metrics.OutcomeError)
		}
		return Session{}, err
	}

	session, err := s.startSession(ctx, profile.Username)
	if err != nil {
		s.metrics.Registration(metrics.OutcomeError)
		return Session{}, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	s.metrics.Registration(metrics.OutcomeSuccess)
	return session, nil
}

// Login checks the credentials and returns a fresh session. Unknown users
// and wrong passwords both yield ErrInvalidCredentials; the former also
// matches domain.ErrNotFound.
func (s *AuthService) Login(ctx context.Context, username, plaintext string) (Session, error) {
	ok, err := s.identity.Authenticate(ctx, username, plaintext)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.Login(metrics.OutcomeInvalid)
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	case err != nil:
		s.metrics.Login(metrics.OutcomeError)
		return Session{}, err
	case !ok:
		s.metrics.Login(metrics.OutcomeInvalid)
		return Session{}, ErrInvalidCredentials
	}

	session, err := s.startSession(ctx, username)
	if err != nil {
		s.metrics.Login(metrics.OutcomeError)
		return Session{}, err
	}

	s.metrics.Login(metrics.OutcomeSuccess)
	return session, nil
}

func (s *AuthService) startSession(ctx context.Context, username string) (Session, error) {
	stamp, err := s.identity.UpdateLoginTimestamp(ctx, username)
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.Issue(auth.Claims{
		Username:       stamp.Username,
		LoginTimestamp: stamp.LastLoginAt,
	})
	if err != nil {
		return Session{}, fmt.Errorf("generating token: %w", err)
	}

	return Session{
		Token:          token,
		Username:       stamp.Username,
		LoginTimestamp: stamp.LastLoginAt,
	}, nil
}
