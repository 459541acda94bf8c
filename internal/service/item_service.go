package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type CreateItemInput struct {
	Title       string
	Description *string
	Brand       *string
	Size        *string
	Category    string
	Condition   string
	Photos      []string
	MinPrice    *float64
	MaxPrice    *float64
}

// SaleResult pairs the sold item with the transaction row recorded for it.
type SaleResult struct {
	Item        *model.Item
	Transaction *model.Transaction
}

type ItemService interface {
	CreateForRequest(ctx context.Context, requestID uint64, uid string, in CreateItemInput) (*model.Item, error)
	ListForUser(ctx context.Context, uid string, role model.Role) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error)
	Approve(ctx context.Context, id uint64, uid string, approvedPrice *float64) (*model.Item, error)
	CounterOffer(ctx context.Context, id uint64, uid string, minPrice, maxPrice *float64) (*model.Item, error)
	Decline(ctx context.Context, id uint64, uid string) (*model.Item, error)
	List(ctx context.Context, id uint64, uid string, platform *string) (*model.Item, error)
	MarkSold(ctx context.Context, id uint64, uid string, salePrice float64) (*SaleResult, error)
}

type itemService struct {
	repo        repository.ItemRepository
	requestRepo repository.RequestRepository
	requests    RequestService
	notify      NotificationService
}

func NewItemService(repo repository.ItemRepository, requestRepo repository.RequestRepository, requests RequestService, notify NotificationService) ItemService {
	return &itemService{repo: repo, requestRepo: requestRepo, requests: requests, notify: notify}
}

func (s *itemService) CreateForRequest(ctx context.Context, requestID uint64, uid string, in CreateItemInput) (*model.Item, error) {
	req, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, asNotFound(err)
	}
	// Only the reusse assigned to the request does intake.
	if req.ReusseID == nil || *req.ReusseID != uid {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if in.Category == "" || in.Condition == "" {
		return nil, errors.New("category and condition are required")
	}
	item := &model.Item{
		RequestID:   requestID,
		SellerID:    req.SellerID,
		ReusseID:    uid,
		Title:       title,
		Description: in.Description,
		Brand:       in.Brand,
		Size:        in.Size,
		Category:    in.Category,
		Condition:   in.Condition,
		Photos:      in.Photos,
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
		Status:      model.ItemStatusPendingApproval,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	link := requestLink(requestID)
	s.notify.Notify(ctx, req.SellerID, "item_added", "New Item Added",
		fmt.Sprintf("Item %q was added to your request.", title), &link)
	return item, nil
}

func (s *itemService) ListForUser(ctx context.Context, uid string, role model.Role) ([]model.Item, error) {
	if role == model.RoleReusse {
		return s.repo.ListByReusse(ctx, uid)
	}
	return s.repo.ListBySeller(ctx, uid)
}

func (s *itemService) ListByRequest(ctx context.Context, requestID uint64) ([]model.Item, error) {
	return s.repo.ListByRequest(ctx, requestID)
}

func (s *itemService) Approve(ctx context.Context, id uint64, uid string, approvedPrice *float64) (*model.Item, error) {
	item, err := s.sellerItem(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":                   model.ItemStatusApproved,
		"price_approved_by_seller": true,
		"approved_price":           approvedPrice,
	}); err != nil {
		return nil, err
	}
	link := requestLink(item.RequestID)
	s.notify.Notify(ctx, item.ReusseID, "item_approved", "Price Approved",
		fmt.Sprintf("Seller approved pricing for %q.", item.Title), &link)
	return s.repo.FindByID(ctx, id)
}

func (s *itemService) CounterOffer(ctx context.Context, id uint64, uid string, minPrice, maxPrice *float64) (*model.Item, error) {
	item, err := s.sellerItem(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":                   model.ItemStatusPendingApproval,
		"min_price":                minPrice,
		"max_price":                maxPrice,
		"price_approved_by_seller": false,
	}); err != nil {
		return nil, err
	}
	link := requestLink(item.RequestID)
	s.notify.Notify(ctx, item.ReusseID, "counter_offer", "Counter Offer",
		fmt.Sprintf("Seller suggested a different price for %q.", item.Title), &link)
	return s.repo.FindByID(ctx, id)
}

func (s *itemService) Decline(ctx context.Context, id uint64, uid string) (*model.Item, error) {
	item, err := s.sellerItem(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":                   model.ItemStatusReturned,
		"price_approved_by_seller": false,
	}); err != nil {
		return nil, err
	}
	link := requestLink(item.RequestID)
	s.notify.Notify(ctx, item.ReusseID, "item_declined", "Item Declined",
		fmt.Sprintf("Seller declined %q.", item.Title), &link)
	return s.repo.FindByID(ctx, id)
}

func (s *itemService) List(ctx context.Context, id uint64, uid string, platform *string) (*model.Item, error) {
	item, err := s.reusseItem(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if item.Status != model.ItemStatusApproved {
		return nil, ErrConflict
	}
	now := time.Now()
	if err := s.repo.Update(ctx, id, map[string]interface{}{
		"status":             model.ItemStatusListed,
		"listed_at":          now,
		"platform_listed_on": platform,
	}); err != nil {
		return nil, err
	}

	// Listing moves the parent request into in_progress; under the
	// default flow this overwrites whatever status the request had.
	if err := s.requests.AdvanceStatus(ctx, item.RequestID, model.RequestStatusInProgress); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%q has been listed.", item.Title)
	if platform != nil && *platform != "" {
		msg = fmt.Sprintf("%q has been listed on %s.", item.Title, *platform)
	}
	link := requestLink(item.RequestID)
	s.notify.Notify(ctx, item.SellerID, "item_listed", "Item Listed", msg, &link)
	return s.repo.FindByID(ctx, id)
}

func (s *itemService) MarkSold(ctx context.Context, id uint64, uid string, salePrice float64) (*SaleResult, error) {
	item, err := s.reusseItem(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if item.Status != model.ItemStatusListed {
		return nil, ErrConflict
	}
	if salePrice <= 0 {
		return nil, errors.New("valid sale price required")
	}

	sellerEarning, reusseEarning := model.SplitSale(salePrice)
	now := time.Now()
	requestID := item.RequestID
	txn := &model.Transaction{
		ItemID:        item.ID,
		RequestID:     &requestID,
		SellerID:      item.SellerID,
		ReusseID:      item.ReusseID,
		SalePrice:     salePrice,
		SellerEarning: sellerEarning,
		ReusseEarning: reusseEarning,
		Status:        "completed",
	}
	if err := s.repo.Sell(ctx, id, salePrice, now, txn); err != nil {
		return nil, err
	}

	link := "/items"
	s.notify.Notify(ctx, item.SellerID, "item_sold", "Item Sold!",
		fmt.Sprintf("%q sold for %.2f EUR. Your earnings: %.2f EUR.", item.Title, salePrice, sellerEarning), &link)

	sold, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	return &SaleResult{Item: sold, Transaction: txn}, nil
}

func (s *itemService) sellerItem(ctx context.Context, id uint64, uid string) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if item.SellerID != uid {
		return nil, ErrForbidden
	}
	return item, nil
}

func (s *itemService) reusseItem(ctx context.Context, id uint64, uid string) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err)
	}
	if item.ReusseID != uid {
		return nil, ErrForbidden
	}
	return item, nil
}
