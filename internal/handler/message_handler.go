package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type ConversationUser struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

type ConversationResponse struct {
	UserID      string           `json:"userId"`
	User        ConversationUser `json:"user"`
	LastMessage model.Message    `json:"lastMessage"`
	UnreadCount int              `json:"unreadCount"`
}

func (h *MessageHandler) Conversations(c echo.Context) error {
	list, err := h.svc.Conversations(c.Request().Context(), currentUID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch conversations"))
	}
	resp := make([]ConversationResponse, 0, len(list))
	for _, cv := range list {
		resp = append(resp, ConversationResponse{
			UserID: cv.UserID,
			User: ConversationUser{
				ID:              cv.User.ID,
				FirstName:       cv.User.FirstName,
				LastName:        cv.User.LastName,
				ProfileImageURL: cv.User.ProfileImageURL,
			},
			LastMessage: cv.LastMessage,
			UnreadCount: cv.UnreadCount,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *MessageHandler) Thread(c echo.Context) error {
	otherUID := c.Param("userId")
	msgs, err := h.svc.Thread(c.Request().Context(), currentUID(c), otherUID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch messages"))
	}
	return c.JSON(http.StatusOK, msgs)
}

type SendMessageRequest struct {
	ReceiverID string  `json:"receiverId"`
	Content    string  `json:"content"`
	RequestID  *uint64 `json:"requestId"`
}

type MessageResponse struct {
	ID         uint64  `json:"id"`
	SenderID   string  `json:"senderId"`
	ReceiverID string  `json:"receiverId"`
	RequestID  *uint64 `json:"requestId,omitempty"`
	Content    string  `json:"content"`
	IsRead     bool    `json:"isRead"`
	CreatedAt  string  `json:"createdAt"`
}

func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	msg, err := h.svc.Send(c.Request().Context(), currentUID(c), req.ReceiverID, req.Content, req.RequestID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, MessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		RequestID:  msg.RequestID,
		Content:    msg.Content,
		IsRead:     msg.IsRead,
		CreatedAt:  msg.CreatedAt.Format(time.RFC3339),
	})
}
