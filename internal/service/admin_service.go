package service

import (
	"context"
	"errors"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
	"gorm.io/gorm"
)

type UserWithProfile struct {
	User    model.User
	Profile *model.Profile
}

type AdminStats struct {
	TotalUsers          int64 `json:"totalUsers"`
	TotalSellers        int64 `json:"totalSellers"`
	TotalReusses        int64 `json:"totalReusses"`
	PendingApplications int64 `json:"pendingApplications"`
	TotalRequests       int64 `json:"totalRequests"`
	ActiveRequests      int64 `json:"activeRequests"`
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]UserWithProfile, error)
	ListApplications(ctx context.Context) ([]UserWithProfile, error)
	UpdateApplication(ctx context.Context, userID string, status model.ProfileStatus) (*model.Profile, error)
	Stats(ctx context.Context) (*AdminStats, error)
}

type adminService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	requestRepo repository.RequestRepository
	notify      NotificationService
}

func NewAdminService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, requestRepo repository.RequestRepository, notify NotificationService) AdminService {
	return &adminService{userRepo: userRepo, profileRepo: profileRepo, requestRepo: requestRepo, notify: notify}
}

func (s *adminService) ListUsers(ctx context.Context) ([]UserWithProfile, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]UserWithProfile, 0, len(users))
	for _, u := range users {
		entry := UserWithProfile{User: u}
		profile, err := s.profileRepo.FindByUser(ctx, u.ID)
		if err == nil {
			entry.Profile = profile
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, nil
}

func (s *adminService) ListApplications(ctx context.Context) ([]UserWithProfile, error) {
	profiles, err := s.profileRepo.ListPendingReusses(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]UserWithProfile, 0, len(profiles))
	for i := range profiles {
		user, err := s.userRepo.FindByID(ctx, profiles[i].UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		result = append(result, UserWithProfile{User: *user, Profile: &profiles[i]})
	}
	return result, nil
}

func (s *adminService) UpdateApplication(ctx context.Context, userID string, status model.ProfileStatus) (*model.Profile, error) {
	if status != model.ProfileStatusApproved && status != model.ProfileStatusRejected {
		return nil, errors.New("status must be approved or rejected")
	}
	rows, err := s.profileRepo.UpdateStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	title := "Application Update"
	msg := "Your reseller application status has been updated."
	if status == model.ProfileStatusApproved {
		title = "Application Approved"
		msg = "Your reseller application has been approved! You can now accept seller requests."
	}
	s.notify.Notify(ctx, userID, "application_update", title, msg, nil)

	return s.profileRepo.FindByUser(ctx, userID)
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}
	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSellers, err = s.profileRepo.CountByRole(ctx, model.RoleSeller); err != nil {
		return nil, err
	}
	if stats.TotalReusses, err = s.profileRepo.CountByRoleAndStatus(ctx, model.RoleReusse, model.ProfileStatusApproved); err != nil {
		return nil, err
	}
	if stats.PendingApplications, err = s.profileRepo.CountByRoleAndStatus(ctx, model.RoleReusse, model.ProfileStatusPending); err != nil {
		return nil, err
	}
	if stats.TotalRequests, err = s.requestRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveRequests, err = s.requestRepo.CountActive(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}
