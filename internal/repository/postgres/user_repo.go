package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/vedran77/messagely/internal/domain"
)

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (username, password, first_name, last_name, phone, join_at)
		VALUES ($1, $2, $3, $4, $5, current_timestamp)
		RETURNING username, password, first_name, last_name, phone, join_at, last_login_at`

	row := r.db.QueryRow(ctx, query,
		user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
	)

	var u domain.User
	err := row.Scan(
		&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.JoinedAt, &u.LastLoginAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT username, password, first_name, last_name, phone, join_at, last_login_at
		FROM users
		WHERE username = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.JoinedAt, &u.LastLoginAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) GetPasswordHash(ctx context.Context, username string) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT password FROM users WHERE username = $1`, username).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	return hash, err
}

// TouchLastLogin advances last_login_at to the current time. GREATEST keeps
// the column from moving backward if the database clock does.
func (r *UserRepo) TouchLastLogin(ctx context.Context, username string) (*domain.LoginStamp, error) {
	query := `
		UPDATE users
		SET last_login_at = GREATEST(last_login_at, current_timestamp)
		WHERE username = $1
		RETURNING username, last_login_at`

	var stamp domain.LoginStamp
	err := r.db.QueryRow(ctx, query, username).Scan(&stamp.Username, &stamp.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stamp, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.UserSummary, error) {
	query := `
		SELECT username, first_name, last_name, phone
		FROM users
		ORDER BY username`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.UserSummary{}
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Phone); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
