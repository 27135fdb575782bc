package postgres

import (
	"context"

	"github.com/vedran77/messagely/internal/domain"
)

type MessageRepo struct {
	db DBTX
}

func NewMessageRepo(db DBTX) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) ListFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	query := `
		SELECT m.id, m.body, m.sent_at, m.read_at,
			t.username, t.first_name, t.last_name, t.phone
		FROM messages m
		JOIN users t ON m.to_username = t.username
		WHERE m.from_username = $1
		ORDER BY m.sent_at, m.id`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.SentMessage{}
	for rows.Next() {
		var msg domain.SentMessage
		if err := rows.Scan(
			&msg.ID, &msg.Body, &msg.SentAt, &msg.ReadAt,
			&msg.ToUser.Username, &msg.ToUser.FirstName, &msg.ToUser.LastName, &msg.ToUser.Phone,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepo) ListTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	query := `
		SELECT m.id, m.body, m.sent_at, m.read_at,
			f.username, f.first_name, f.last_name, f.phone
		FROM messages m
		JOIN users f ON m.from_username = f.username
		WHERE m.to_username = $1
		ORDER BY m.sent_at, m.id`

	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ReceivedMessage{}
	for rows.Next() {
		var msg domain.ReceivedMessage
		if err := rows.Scan(
			&msg.ID, &msg.Body, &msg.SentAt, &msg.ReadAt,
			&msg.FromUser.Username, &msg.FromUser.FirstName, &msg.FromUser.LastName, &msg.FromUser.Phone,
		); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
