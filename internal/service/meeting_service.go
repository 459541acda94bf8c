package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type CreateMeetingInput struct {
	ScheduledDate time.Time
	Location      string
	Duration      int
	Notes         *string
}

type RescheduleMeetingInput struct {
	ScheduledDate time.Time
	Location      *string
	Notes         *string
}

type MeetingService interface {
	Create(ctx context.Context, requestID uint64, uid string, in CreateMeetingInput) (*model.Meeting, error)
	ListByRequest(ctx context.Context, requestID uint64, uid string) ([]model.Meeting, error)
	ListForUser(ctx context.Context, uid string) ([]model.Meeting, error)
	Cancel(ctx context.Context, id uint64, uid string) (*model.Meeting, error)
	Reschedule(ctx context.Context, id uint64, uid string, in RescheduleMeetingInput) (*model.Meeting, error)
}

type meetingService struct {
	repo        repository.MeetingRepository
	requestRepo repository.RequestRepository
	requests    RequestService
	notify      NotificationService
}

func NewMeetingService(repo repository.MeetingRepository, requestRepo repository.RequestRepository, requests RequestService, notify NotificationService) MeetingService {
	return &meetingService{repo: repo, requestRepo: requestRepo, requests: requests, notify: notify}
}

func (s *meetingService) Create(ctx context.Context, requestID uint64, uid string, in CreateMeetingInput) (*model.Meeting, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !req.IsParty(uid) {
		return nil, ErrForbidden
	}
	if in.ScheduledDate.IsZero() {
		return nil, errors.New("scheduledDate is required")
	}
	if in.Location == "" {
		return nil, errors.New("location is required")
	}
	if in.Duration <= 0 {
		in.Duration = 60
	}
	m := &model.Meeting{
		RequestID:     requestID,
		ScheduledDate: in.ScheduledDate,
		Location:      in.Location,
		Duration:      in.Duration,
		Status:        model.MeetingStatusScheduled,
		Notes:         in.Notes,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	// Every new meeting pushes the request to scheduled, even one
	// created late in the workflow (latest-action-wins unless strict
	// flow is on).
	if err := s.requests.AdvanceStatus(ctx, requestID, model.RequestStatusScheduled); err != nil {
		return nil, err
	}

	if other := req.Counterpart(uid); other != "" {
		link := requestLink(requestID)
		s.notify.Notify(ctx, other, "meeting_scheduled", "Meeting Scheduled",
			fmt.Sprintf("A meeting has been scheduled for %s.", in.ScheduledDate.Format("02/01/2006")), &link)
	}
	return m, nil
}

func (s *meetingService) ListByRequest(ctx context.Context, requestID uint64, uid string) ([]model.Meeting, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !req.IsParty(uid) {
		return nil, ErrForbidden
	}
	return s.repo.ListByRequest(ctx, requestID)
}

func (s *meetingService) ListForUser(ctx context.Context, uid string) ([]model.Meeting, error) {
	ids, err := s.requestRepo.ListIDsByParty(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByRequestIDs(ctx, ids)
}

func (s *meetingService) Cancel(ctx context.Context, id uint64, uid string) (*model.Meeting, error) {
	m, req, err := s.meetingForParty(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"status": model.MeetingStatusCancelled}); err != nil {
		return nil, err
	}
	if other := req.Counterpart(uid); other != "" {
		link := requestLink(req.ID)
		s.notify.Notify(ctx, other, "meeting_cancelled", "Meeting Cancelled",
			fmt.Sprintf("A meeting scheduled for %s has been cancelled.", m.ScheduledDate.Format("02/01/2006")), &link)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *meetingService) Reschedule(ctx context.Context, id uint64, uid string, in RescheduleMeetingInput) (*model.Meeting, error) {
	_, req, err := s.meetingForParty(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if in.ScheduledDate.IsZero() {
		return nil, errors.New("scheduledDate is required")
	}
	updates := map[string]interface{}{
		"scheduled_date": in.ScheduledDate,
		"status":         model.MeetingStatusScheduled,
	}
	if in.Location != nil && *in.Location != "" {
		updates["location"] = *in.Location
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	if other := req.Counterpart(uid); other != "" {
		link := requestLink(req.ID)
		s.notify.Notify(ctx, other, "meeting_rescheduled", "Meeting Rescheduled",
			fmt.Sprintf("A meeting has been rescheduled to %s.", in.ScheduledDate.Format("02/01/2006")), &link)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *meetingService) meetingForParty(ctx context.Context, id uint64, uid string) (*model.Meeting, *model.Request, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	req, err := s.requestRepo.FindByID(ctx, m.RequestID)
	if err != nil {
		return nil, nil, asNotFound(err)
	}
	if !req.IsParty(uid) {
		return nil, nil, ErrForbidden
	}
	return m, req, nil
}
