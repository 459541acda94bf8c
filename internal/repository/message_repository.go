package repository

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	ListByUser(ctx context.Context, uid string) ([]model.Message, error)
	ListBetween(ctx context.Context, uid, otherUID string) ([]model.Message, error)
	MarkReadBetween(ctx context.Context, senderID, receiverID string) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *messageRepository) ListByUser(ctx context.Context, uid string) ([]model.Message, error) {
	var list []model.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", uid, uid).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *messageRepository) ListBetween(ctx context.Context, uid, otherUID string) ([]model.Message, error) {
	var list []model.Message
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			uid, otherUID, otherUID, uid).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *messageRepository) MarkReadBetween(ctx context.Context, senderID, receiverID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}
