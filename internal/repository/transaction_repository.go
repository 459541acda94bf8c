package repository

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	ListBySeller(ctx context.Context, sellerID string) ([]model.Transaction, error)
	ListByReusse(ctx context.Context, reusseID string) ([]model.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *transactionRepository) ListByReusse(ctx context.Context, reusseID string) ([]model.Transaction, error) {
	var list []model.Transaction
	if err := r.db.WithContext(ctx).
		Where("reusse_id = ?", reusseID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
