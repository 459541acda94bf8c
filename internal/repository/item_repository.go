package repository

import (
	"context"
	"time"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint64) (*model.Item, error)
	ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error)
	ListByReusse(ctx context.Context, reusseID string) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error)
	Update(ctx context.Context, id uint64, updates map[string]interface{}) error
	Sell(ctx context.Context, id uint64, salePrice float64, soldAt time.Time, txn *model.Transaction) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Item, error) {
	var list []model.Item
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *itemRepository) ListByReusse(ctx context.Context, reusseID string) ([]model.Item, error) {
	var list []model.Item
	if err := r.db.WithContext(ctx).
		Where("reusse_id = ?", reusseID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *itemRepository) ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error) {
	var list []model.Item
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *itemRepository) Update(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Sell flips the item to sold and inserts its transaction row in one
// database transaction so a crash between the two writes cannot leave
// a sold item without an earnings record.
func (r *itemRepository) Sell(ctx context.Context, id uint64, salePrice float64, soldAt time.Time, txn *model.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Item{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     model.ItemStatusSold,
				"sale_price": salePrice,
				"sold_at":    soldAt,
			}).Error; err != nil {
			return err
		}
		return tx.Create(txn).Error
	})
}
