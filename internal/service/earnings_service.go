package service

import (
	"context"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type Earnings struct {
	Total        float64             `json:"total"`
	Transactions []model.Transaction `json:"transactions"`
}

type EarningsService interface {
	ForUser(ctx context.Context, uid string, role model.Role) (*Earnings, error)
}

type earningsService struct {
	repo repository.TransactionRepository
}

func NewEarningsService(repo repository.TransactionRepository) EarningsService {
	return &earningsService{repo: repo}
}

// ForUser sums the caller's side of every recorded sale. Transactions
// are the only earnings source; nothing is recomputed from items.
func (s *earningsService) ForUser(ctx context.Context, uid string, role model.Role) (*Earnings, error) {
	var (
		txns []model.Transaction
		err  error
	)
	if role == model.RoleReusse {
		txns, err = s.repo.ListByReusse(ctx, uid)
	} else {
		txns, err = s.repo.ListBySeller(ctx, uid)
	}
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, t := range txns {
		if role == model.RoleReusse {
			total += t.ReusseEarning
		} else {
			total += t.SellerEarning
		}
	}
	return &Earnings{Total: model.Round2(total), Transactions: txns}, nil
}
