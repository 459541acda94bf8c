package repository

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByUser(ctx context.Context, userID string) (*model.Profile, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, userID string, status model.ProfileStatus) (int64, error)
	ListPendingReusses(ctx context.Context) ([]model.Profile, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
	CountByRoleAndStatus(ctx context.Context, role model.Role, status model.ProfileStatus) (int64, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepository) FindByUser(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
}

func (r *profileRepository) UpdateStatus(ctx context.Context, userID string, status model.ProfileStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *profileRepository) ListPendingReusses(ctx context.Context) ([]model.Profile, error) {
	var list []model.Profile
	if err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", model.RoleReusse, model.ProfileStatusPending).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *profileRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("role = ?", role).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *profileRepository) CountByRoleAndStatus(ctx context.Context, role model.Role, status model.ProfileStatus) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("role = ? AND status = ?", role, status).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
