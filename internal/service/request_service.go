package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type CreateRequestInput struct {
	ServiceType     model.ServiceType
	ItemCount       int
	EstimatedValue  *float64
	MeetingLocation *string
	Notes           *string
}

type RequestService interface {
	Create(ctx context.Context, sellerID string, in CreateRequestInput) (*model.Request, error)
	ListForUser(ctx context.Context, uid string, role model.Role) ([]model.Request, error)
	ListAvailable(ctx context.Context) ([]model.Request, error)
	Get(ctx context.Context, id uint64) (*model.Request, error)
	Accept(ctx context.Context, id uint64, uid string) (*model.Request, error)
	Cancel(ctx context.Context, id uint64, uid string) (*model.Request, error)
	Complete(ctx context.Context, id uint64, uid string) (*model.Request, error)

	// AdvanceStatus moves a request to the status implied by a side
	// effect elsewhere in the workflow (meeting created, item listed).
	AdvanceStatus(ctx context.Context, id uint64, to model.RequestStatus) error
}

type requestService struct {
	repo        repository.RequestRepository
	profileRepo repository.ProfileRepository
	notify      NotificationService

	// strictFlow makes AdvanceStatus monotonic instead of
	// latest-action-wins. See config.StrictStatusFlow.
	strictFlow bool
}

func NewRequestService(repo repository.RequestRepository, profileRepo repository.ProfileRepository, notify NotificationService, strictFlow bool) RequestService {
	return &requestService{repo: repo, profileRepo: profileRepo, notify: notify, strictFlow: strictFlow}
}

func (s *requestService) Create(ctx context.Context, sellerID string, in CreateRequestInput) (*model.Request, error) {
	profile, err := s.profileRepo.FindByUser(ctx, sellerID)
	if err != nil {
		return nil, asNotFound(err)
	}
	if profile.Role != model.RoleSeller {
		return nil, ErrForbidden
	}
	if !in.ServiceType.Valid() {
		return nil, errors.New("invalid service type")
	}
	if in.ItemCount <= 0 {
		return nil, errors.New("item count must be positive")
	}
	req := &model.Request{
		SellerID:        sellerID,
		ServiceType:     in.ServiceType,
		Status:          model.RequestStatusPending,
		ItemCount:       in.ItemCount,
		EstimatedValue:  in.EstimatedValue,
		MeetingLocation: in.MeetingLocation,
		Notes:           in.Notes,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *requestService) ListForUser(ctx context.Context, uid string, role model.Role) ([]model.Request, error) {
	switch role {
	case model.RoleAdmin:
		return s.repo.ListAll(ctx)
	case model.RoleReusse:
		return s.repo.ListByReusse(ctx, uid)
	default:
		return s.repo.ListBySeller(ctx, uid)
	}
}

func (s *requestService) ListAvailable(ctx context.Context) ([]model.Request, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *requestService) Get(ctx context.Context, id uint64) (*model.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return req, nil
}

func (s *requestService) Accept(ctx context.Context, id uint64, uid string) (*model.Request, error) {
	profile, err := s.profileRepo.FindByUser(ctx, uid)
	if err != nil {
		return nil, asNotFound(err)
	}
	if profile.Role != model.RoleReusse {
		return nil, ErrForbidden
	}
	if profile.Status != model.ProfileStatusApproved {
		return nil, ErrForbidden
	}
	rows, err := s.repo.AcceptIfPending(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race (or the request was never pending).
		return nil, ErrUnavailable
	}
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	link := requestLink(req.ID)
	s.notify.Notify(ctx, req.SellerID, "request_matched", "Request Matched",
		"A reseller has been assigned to your request!", &link)
	return req, nil
}

func (s *requestService) Cancel(ctx context.Context, id uint64, uid string) (*model.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !req.IsParty(uid) && !s.isAdmin(ctx, uid) {
		return nil, ErrForbidden
	}
	if req.Status.Terminal() {
		return nil, ErrConflict
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{"status": model.RequestStatusCancelled}); err != nil {
		return nil, err
	}
	if req.ReusseID != nil {
		link := requestLink(id)
		s.notify.Notify(ctx, *req.ReusseID, "request_cancelled", "Request Cancelled",
			fmt.Sprintf("Request #%d has been cancelled.", id), &link)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *requestService) Complete(ctx context.Context, id uint64, uid string) (*model.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if !req.IsParty(uid) {
		return nil, ErrForbidden
	}
	if req.Status.Terminal() {
		return nil, ErrConflict
	}
	now := time.Now()
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":       model.RequestStatusCompleted,
		"completed_at": now,
	}); err != nil {
		return nil, err
	}
	if other := req.Counterpart(uid); other != "" {
		link := requestLink(id)
		s.notify.Notify(ctx, other, "request_completed", "Request Completed",
			fmt.Sprintf("Request #%d has been marked as complete.", id), &link)
	}
	return s.repo.FindByID(ctx, id)
}

func (s *requestService) AdvanceStatus(ctx context.Context, id uint64, to model.RequestStatus) error {
	if s.strictFlow {
		req, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return asNotFound(err)
		}
		if req.Status.Terminal() || !req.Status.Before(to) {
			return nil
		}
	}
	return s.repo.Update(ctx, id, map[string]interface{}{"status": to})
}

func (s *requestService) isAdmin(ctx context.Context, uid string) bool {
	profile, err := s.profileRepo.FindByUser(ctx, uid)
	return err == nil && profile.Role == model.RoleAdmin
}

func requestLink(id uint64) string {
	return fmt.Sprintf("/requests/%d", id)
}
