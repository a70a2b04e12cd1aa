package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/chirper-app/chirper/internal/domain/entity"
	"github.com/chirper-app/chirper/internal/domain/repository"
	"github.com/chirper-app/chirper/pkg/apperror"
)

// MessageService backs both the REST history endpoint and the realtime
// channel. Direct messages require that both users follow each other.
type MessageService struct {
	Messages repository.MessageRepository
	Follows  repository.FollowRepository
	Users    repository.UserRepository
	Logger   *logrus.Logger
}

func NewMessageService(messages repository.MessageRepository, follows repository.FollowRepository, users repository.UserRepository, logger *logrus.Logger) *MessageService {
	return &MessageService{Messages: messages, Follows: follows, Users: users, Logger: logger}
}

// checkMutualFollow enforces the DM gate.
func (s *MessageService) checkMutualFollow(ctx context.Context, userID, otherUserID string) error {
	aFollowsB, err := s.Follows.CheckFollow(ctx, userID, otherUserID)
	if err != nil {
		return err
	}
	bFollowsA, err := s.Follows.CheckFollow(ctx, otherUserID, userID)
	if err != nil {
		return err
	}
	if !aFollowsB || !bFollowsA {
		return apperror.Conflict("USERS_NOT_FOLLOWING_EACH_OTHER")
	}
	return nil
}

type CreateMessageInput struct {
	ReceiverID string
	Content    string
}

// SendMessage persists a direct message after verifying the recipient
// exists and the pair follows each other.
func (s *MessageService) SendMessage(ctx context.Context, senderID string, in CreateMessageInput) (*entity.Message, error) {
	receiver, err := s.Users.GetByID(ctx, in.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, apperror.NotFound("user")
	}
	if err := s.checkMutualFollow(ctx, senderID, in.ReceiverID); err != nil {
		return nil, err
	}

	m := &entity.Message{SenderID: senderID, ReceiverID: in.ReceiverID, Content: in.Content}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetHistory returns the full two-way conversation, oldest first.
func (s *MessageService) GetHistory(ctx context.Context, userID, otherUserID string) ([]entity.Message, error) {
	other, err := s.Users.GetByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, apperror.NotFound("user")
	}
	if err := s.checkMutualFollow(ctx, userID, otherUserID); err != nil {
		return nil, err
	}
	return s.Messages.GetHistory(ctx, userID, otherUserID)
}
