package repository

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type RequestRepository interface {
	Create(ctx context.Context, req *model.Request) error
	FindByID(ctx context.Context, id uint64) (*model.Request, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Request, error)
	ListByReusse(ctx context.Context, reusseID string) ([]model.Request, error)
	ListAll(ctx context.Context) ([]model.Request, error)
	ListAvailable(ctx context.Context) ([]model.Request, error)
	ListIDsByParty(ctx context.Context, uid string) ([]uint64, error)
	Update(ctx context.Context, id uint64, updates map[string]interface{}) error
	AcceptIfPending(ctx context.Context, id uint64, reusseID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *requestRepository) FindByID(ctx context.Context, id uint64) (*model.Request, error) {
	var req model.Request
	if err := r.db.WithContext(ctx).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Request, error) {
	var list []model.Request
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *requestRepository) ListByReusse(ctx context.Context, reusseID string) ([]model.Request, error) {
	var list []model.Request
	if err := r.db.WithContext(ctx).
		Where("reusse_id = ?", reusseID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *requestRepository) ListAll(ctx context.Context) ([]model.Request, error) {
	var list []model.Request
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *requestRepository) ListAvailable(ctx context.Context) ([]model.Request, error) {
	var list []model.Request
	if err := r.db.WithContext(ctx).
		Where("status = ? AND reusse_id IS NULL", model.RequestStatusPending).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *requestRepository) ListIDsByParty(ctx context.Context, uid string) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("seller_id = ? OR reusse_id = ?", uid, uid).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *requestRepository) Update(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AcceptIfPending atomically claims a pending request for a reusse.
// The WHERE predicate on status is the only mechanism preventing two
// reusses from both winning the same request; zero rows affected means
// someone else got there first.
func (r *requestRepository) AcceptIfPending(ctx context.Context, id uint64, reusseID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"reusse_id": reusseID,
			"status":    model.RequestStatusMatched,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Request{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *requestRepository) CountActive(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Request{}).
		Where("status <> ?", model.RequestStatusCompleted).
		Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}
