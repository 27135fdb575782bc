package service

import (
	"context"

	"github.com/vedran77/messagely/internal/domain"
	"github.com/vedran77/messagely/internal/repository"
)

// MessageService resolves a user's messages together with the profile of
// the other party. Usernames are not checked for existence.
type MessageService struct {
	messageRepo repository.MessageRepository
}

func NewMessageService(messageRepo repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// MessagesFrom lists messages sent by username, each with its recipient.
func (s *MessageService) MessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	msgs, err := s.messageRepo.ListFrom(ctx, username)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.SentMessage{}
	}
	return msgs, nil
}

// MessagesTo lists messages received by username, each with its sender.
func (s *MessageService) MessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	msgs, err := s.messageRepo.ListTo(ctx, username)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []domain.ReceivedMessage{}
	}
	return msgs, nil
}
