package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

// Conversation is a derived view: there is no conversation table, just
// messages grouped by counterpart.
type Conversation struct {
	UserID      string
	User        *model.User
	LastMessage model.Message
	UnreadCount int
}

type MessageService interface {
	Conversations(ctx context.Context, uid string) ([]Conversation, error)
	Thread(ctx context.Context, uid, otherUID string) ([]model.Message, error)
	Send(ctx context.Context, senderID, receiverID, content string, requestID *uint64) (*model.Message, error)
}

type messageService struct {
	repo     repository.MessageRepository
	userRepo repository.UserRepository
}

func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{repo: repo, userRepo: userRepo}
}

func (s *messageService) Conversations(ctx context.Context, uid string) ([]Conversation, error) {
	msgs, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]model.Message)
	for _, m := range msgs {
		other := m.SenderID
		if other == uid {
			other = m.ReceiverID
		}
		grouped[other] = append(grouped[other], m)
	}

	conversations := make([]Conversation, 0, len(grouped))
	for other, list := range grouped {
		// ListByUser returns newest first, so list[0] is the preview.
		unread := 0
		for _, m := range list {
			if m.ReceiverID == uid && !m.IsRead {
				unread++
			}
		}
		user, err := s.userRepo.FindByID(ctx, other)
		if err != nil {
			// Counterpart account no longer resolvable; skip the thread.
			continue
		}
		conversations = append(conversations, Conversation{
			UserID:      other,
			User:        user,
			LastMessage: list[0],
			UnreadCount: unread,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})
	return conversations, nil
}

// Thread returns both directions of a conversation oldest first and, as
// a side effect, marks the counterpart's unread messages to the caller
// as read.
func (s *messageService) Thread(ctx context.Context, uid, otherUID string) ([]model.Message, error) {
	msgs, err := s.repo.ListBetween(ctx, uid, otherUID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.MarkReadBetween(ctx, otherUID, uid); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID, content string, requestID *uint64) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if receiverID == "" {
		return nil, errors.New("receiverId is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}
	msg := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		RequestID:  requestID,
		Content:    content,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
