package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/repository"
	"github.com/vedran77/messagely/internal/security/password"
)

type IdentityService struct {
	userRepo repository.UserRepository
	hasher   password.Hasher
	dummy    string
}

func NewIdentityService(userRepo repository.UserRepository, hasher password.Hasher) (*IdentityService, error) {
	dummy, err := password.Dummy(hasher)
	if err != nil {
		return nil, fmt.Errorf("hashing dummy password: %w", err)
	}

	return &IdentityService{
		userRepo: userRepo,
		hasher:   hasher,
		dummy:    dummy,
	}, nil
}

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Register stores a new user. It returns domain.ErrConflict when the
// username is taken.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (domain.UserProfile, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
	})
	if err != nil {
		return domain.UserProfile{}, err
	}

	return user.Profile(), nil
}

// Authenticate reports whether password matches the stored digest.
// An unknown username yields domain.ErrNotFound.
func (s *IdentityService) Authenticate(ctx context.Context, username, plaintext string) (bool, error) {
	digest, err := s.userRepo.GetPasswordHash(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		s.hasher.Verify(plaintext, s.dummy)
		return false, err
	}
	if err != nil {
		return false, err
	}

	return s.hasher.Verify(plaintext, digest), nil
}

// UpdateLoginTimestamp stamps the user's last login with the current time.
// The stored value never moves backward.
func (s *IdentityService) UpdateLoginTimestamp(ctx context.Context, username string) (domain.LoginStamp, error) {
	stamp, err := s.userRepo.TouchLastLogin(ctx, username)
	if err != nil {
		return domain.LoginStamp{}, err
	}
	return *stamp, nil
}

func (s *IdentityService) GetProfile(ctx context.Context, username string) (domain.UserProfile, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.UserProfile{}, err
	}
	return user.Profile(), nil
}

func (s *IdentityService) ListAll(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.UserSummary{}
	}
	return users, nil
}
