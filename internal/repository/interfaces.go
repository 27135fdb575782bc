package repository

import (
	"context"

	"github.com/vedran77/messagely/internal/domain"
)

// UserRepository returns domain.ErrNotFound for unknown usernames and
// domain.ErrConflict when Create hits the username uniqueness constraint.
// Any other error is a storage fault.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetPasswordHash(ctx context.Context, username string) (string, error)
	TouchLastLogin(ctx context.Context, username string) (*domain.LoginStamp, error)
	List(ctx context.Context) ([]domain.UserSummary, error)
}

// MessageRepository resolves messages together with the counterpart's profile.
// A username with no messages yields an empty result, not an error.
type MessageRepository interface {
	ListFrom(ctx context.Context, username string) ([]domain.SentMessage, error)
	ListTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error)
}
