package repository

import (
	"context"

	"github.com/chirper-app/chirper/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	// GetHistory returns messages in both directions between the two users,
	// ordered by createdAt ascending.
	GetHistory(ctx context.Context, userID, otherUserID string) ([]entity.Message, error)
}
