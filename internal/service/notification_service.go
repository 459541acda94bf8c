package service

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type NotificationService interface {
	Notify(ctx context.Context, userID, typ, title, message string, link *string)
	List(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id uint64, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify is best-effort: a failed insert never breaks the state
// transition that triggered it.
func (s *notificationService) Notify(ctx context.Context, userID, typ, title, message string, link *string) {
	if userID == "" || typ == "" {
		return
	}
	_ = s.repo.Create(ctx, &model.Notification{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Message: message,
		Link:    link,
	})
}

func (s *notificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id uint64, userID string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return asNotFound(err)
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return s.repo.MarkRead(ctx, id)
}
