package repository

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type MeetingRepository interface {
	Create(ctx context.Context, m *model.Meeting) error
	FindByID(ctx context.Context, id uint64) (*model.Meeting, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Meeting, error)
	ListByRequestIDs(ctx context.Context, requestIDs []uint64) ([]model.Meeting, error)
	Update(ctx context.Context, id uint64, updates map[string]interface{}) error
}

type meetingRepository struct {
	db *gorm.DB
}

func NewMeetingRepository(db *gorm.DB) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, m *model.Meeting) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *meetingRepository) FindByID(ctx context.Context, id uint64) (*model.Meeting, error) {
	var m model.Meeting
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *meetingRepository) ListByRequest(ctx context.Context, requestID uint64) ([]model.Meeting, error) {
	var list []model.Meeting
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("scheduled_date DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *meetingRepository) ListByRequestIDs(ctx context.Context, requestIDs []uint64) ([]model.Meeting, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	var list []model.Meeting
	if err := r.db.WithContext(ctx).
		Where("request_id IN ?", requestIDs).
		Order("scheduled_date DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *meetingRepository) Update(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Meeting{}).
		Where("id = ?", id).
		Updates(updates).Error
}
