package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type MeetingHandler struct {
	svc service.MeetingService
}

func NewMeetingHandler(svc service.MeetingService) *MeetingHandler {
	return &MeetingHandler{svc: svc}
}

type MeetingResponse struct {
	ID            uint64  `json:"id"`
	RequestID     uint64  `json:"requestId"`
	ScheduledDate string  `json:"scheduledDate"`
	Location      string  `json:"location"`
	Duration      int     `json:"duration"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

func toMeetingResponse(m *model.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:            m.ID,
		RequestID:     m.RequestID,
		ScheduledDate: m.ScheduledDate.Format(time.RFC3339),
		Location:      m.Location,
		Duration:      m.Duration,
		Status:        string(m.Status),
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
}

func toMeetingListResponse(list []model.Meeting) []MeetingResponse {
	resp := make([]MeetingResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toMeetingResponse(&list[i]))
	}
	return resp
}

type CreateMeetingRequest struct {
	ScheduledDate string  `json:"scheduledDate"`
	Location      string  `json:"location"`
	Duration      int     `json:"duration"`
	Notes         *string `json:"notes"`
}

func (h *MeetingHandler) Create(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	date, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date format"))
	}
	meeting, err := h.svc.Create(c.Request().Context(), requestID, currentUID(c), service.CreateMeetingInput{
		ScheduledDate: date,
		Location:      req.Location,
		Duration:      req.Duration,
		Notes:         req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toMeetingResponse(meeting))
}

func (h *MeetingHandler) ListByRequest(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	list, err := h.svc.ListByRequest(c.Request().Context(), requestID, currentUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingListResponse(list))
}

func (h *MeetingHandler) ListMine(c echo.Context) error {
	list, err := h.svc.ListForUser(c.Request().Context(), currentUID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch meetings"))
	}
	return c.JSON(http.StatusOK, toMeetingListResponse(list))
}

func (h *MeetingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "meetingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	meeting, err := h.svc.Cancel(c.Request().Context(), id, currentUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(meeting))
}

type RescheduleMeetingRequest struct {
	ScheduledDate string  `json:"scheduledDate"`
	Location      *string `json:"location"`
	Notes         *string `json:"notes"`
}

func (h *MeetingHandler) Reschedule(c echo.Context) error {
	id, err := parseID(c, "meetingId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req RescheduleMeetingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if req.ScheduledDate == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "scheduledDate is required"))
	}
	date, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid date format"))
	}
	meeting, err := h.svc.Reschedule(c.Request().Context(), id, currentUID(c), service.RescheduleMeetingInput{
		ScheduledDate: date,
		Location:      req.Location,
		Notes:         req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toMeetingResponse(meeting))
}
