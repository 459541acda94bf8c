package service

import (
	"context"
	"errors"
	"strings"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
	"gorm.io/gorm"
)

type ProfileInput struct {
	Phone                  *string
	Address                *string
	City                   *string
	PostalCode             *string
	Department             *string
	Bio                    *string
	Experience             *string
	SiretNumber            *string
	PreferredContactMethod string
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, userID string, role model.Role, in ProfileInput) (*model.Profile, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return p, nil
}

func (s *profileService) Create(ctx context.Context, userID string, role model.Role, in ProfileInput) (*model.Profile, error) {
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}
	if _, err := s.repo.FindByUser(ctx, userID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Reusses go through admin review before they can accept requests;
	// everyone else is approved immediately.
	status := model.ProfileStatusApproved
	if role == model.RoleReusse {
		status = model.ProfileStatusPending
	}
	contact := strings.TrimSpace(in.PreferredContactMethod)
	if contact == "" {
		contact = "email"
	}
	p := &model.Profile{
		UserID:                 userID,
		Role:                   role,
		Phone:                  in.Phone,
		Address:                in.Address,
		City:                   in.City,
		PostalCode:             in.PostalCode,
		Department:             in.Department,
		Bio:                    in.Bio,
		Experience:             in.Experience,
		SiretNumber:            in.SiretNumber,
		Status:                 status,
		PreferredContactMethod: contact,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.Profile, error) {
	if _, err := s.repo.FindByUser(ctx, userID); err != nil {
		return nil, asNotFound(err)
	}
	// Role and review status are not self-service.
	delete(updates, "role")
	delete(updates, "status")
	delete(updates, "user_id")
	if len(updates) > 0 {
		if err := s.repo.Update(ctx, userID, updates); err != nil {
			return nil, err
		}
	}
	p, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, asNotFound(err)
	}
	return p, nil
}
