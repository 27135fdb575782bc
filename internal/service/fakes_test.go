package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/security/password"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	now   func() time.Time
	err   error

	touchErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]*domain.User),
		now:   time.Now,
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.users[user.Username]; ok {
		return nil, domain.ErrConflict
	}

	stored := *user
	stored.JoinedAt = f.now()
	f.users[user.Username] = &stored
	out := stored
	return &out, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) GetPasswordHash(ctx context.Context, username string) (string, error) {
	u, err := f.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	return u.PasswordHash, nil
}

func (f *fakeUserRepo) TouchLastLogin(_ context.Context, username string) (*domain.LoginStamp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	if f.touchErr != nil {
		return nil, f.touchErr
	}
	u, ok := f.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}

	now := f.now()
	if u.LastLoginAt == nil || now.After(*u.LastLoginAt) {
		u.LastLoginAt = &now
	}
	return &domain.LoginStamp{Username: u.Username, LastLoginAt: *u.LastLoginAt}, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.UserSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	var out []domain.UserSummary
	for _, u := range f.users {
		out = append(out, summaryOf(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func summaryOf(u *domain.User) domain.UserSummary {
	return domain.UserSummary{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
	}
}

// fakeMessageRepo joins its messages against the users held by a fakeUserRepo.
type fakeMessageRepo struct {
	users    *fakeUserRepo
	messages []storedMessage
	err      error
}

// storedMessage is a row of the messages table.
type storedMessage struct {
	ID           uuid.UUID
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
}

func (f *fakeMessageRepo) insert(from, to, body string) storedMessage {
	msg := storedMessage{
		ID:           uuid.New(),
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now(),
	}
	f.messages = append(f.messages, msg)
	return msg
}

func (f *fakeMessageRepo) ListFrom(_ context.Context, username string) ([]domain.SentMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.SentMessage
	for _, m := range f.messages {
		if m.FromUsername != username {
			continue
		}
		to := f.users.users[m.ToUsername]
		out = append(out, domain.SentMessage{
			ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
			ToUser: summaryOf(to),
		})
	}
	return out, nil
}

func (f *fakeMessageRepo) ListTo(_ context.Context, username string) ([]domain.ReceivedMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.ReceivedMessage
	for _, m := range f.messages {
		if m.ToUsername != username {
			continue
		}
		from := f.users.users[m.FromUsername]
		out = append(out, domain.ReceivedMessage{
			ID: m.ID, Body: m.Body, SentAt: m.SentAt, ReadAt: m.ReadAt,
			FromUser: summaryOf(from),
		})
	}
	return out, nil
}

// countingHasher counts Verify calls on the wrapped Hasher.
type countingHasher struct {
	password.Hasher
	verifies atomic.Int32
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.verifies.Add(1)
	return h.Hasher.Verify(plaintext, digest)
}

func newTestHasher(t *testing.T) *countingHasher {
	t.Helper()
	h, err := password.New(password.Config{Algorithm: password.AlgorithmBcrypt, BcryptCost: 4})
	require.NoError(t, err)
	return &countingHasher{Hasher: h}
}

func newTestIdentity(t *testing.T) (*IdentityService, *fakeUserRepo, *countingHasher) {
	t.Helper()
	repo := newFakeUserRepo()
	hasher := newTestHasher(t)
	svc, err := NewIdentityService(repo, hasher)
	require.NoError(t, err)
	return svc, repo, hasher
}
