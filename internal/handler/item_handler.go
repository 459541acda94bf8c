package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type ItemHandler struct {
	svc        service.ItemService
	profileSvc service.ProfileService
}

func NewItemHandler(svc service.ItemService, profileSvc service.ProfileService) *ItemHandler {
	return &ItemHandler{svc: svc, profileSvc: profileSvc}
}

type ItemResponse struct {
	ID                    uint64   `json:"id"`
	RequestID             uint64   `json:"requestId"`
	SellerID              string   `json:"sellerId"`
	ReusseID              string   `json:"reusseId"`
	Title                 string   `json:"title"`
	Description           *string  `json:"description,omitempty"`
	Brand                 *string  `json:"brand,omitempty"`
	Size                  *string  `json:"size,omitempty"`
	Category              string   `json:"category"`
	Condition             string   `json:"condition"`
	Photos                []string `json:"photos,omitempty"`
	MinPrice              *float64 `json:"minPrice,omitempty"`
	MaxPrice              *float64 `json:"maxPrice,omitempty"`
	ApprovedPrice         *float64 `json:"approvedPrice,omitempty"`
	PriceApprovedBySeller bool     `json:"priceApprovedBySeller"`
	Status                string   `json:"status"`
	ListedAt              *string  `json:"listedAt,omitempty"`
	SoldAt                *string  `json:"soldAt,omitempty"`
	SalePrice             *float64 `json:"salePrice,omitempty"`
	PlatformListedOn      *string  `json:"platformListedOn,omitempty"`
	CreatedAt             string   `json:"createdAt"`
	UpdatedAt             string   `json:"updatedAt"`
}

func toItemResponse(item *model.Item) ItemResponse {
	resp := ItemResponse{
		ID:                    item.ID,
		RequestID:             item.RequestID,
		SellerID:              item.SellerID,
		ReusseID:              item.ReusseID,
		Title:                 item.Title,
		Description:           item.Description,
		Brand:                 item.Brand,
		Size:                  item.Size,
		Category:              item.Category,
		Condition:             item.Condition,
		Photos:                item.Photos,
		MinPrice:              item.MinPrice,
		MaxPrice:              item.MaxPrice,
		ApprovedPrice:         item.ApprovedPrice,
		PriceApprovedBySeller: item.PriceApprovedBySeller,
		Status:                string(item.Status),
		SalePrice:             item.SalePrice,
		PlatformListedOn:      item.PlatformListedOn,
		CreatedAt:             item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             item.UpdatedAt.Format(time.RFC3339),
	}
	if item.ListedAt != nil {
		s := item.ListedAt.Format(time.RFC3339)
		resp.ListedAt = &s
	}
	if item.SoldAt != nil {
		s := item.SoldAt.Format(time.RFC3339)
		resp.SoldAt = &s
	}
	return resp
}

func toItemListResponse(list []model.Item) []ItemResponse {
	resp := make([]ItemResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toItemResponse(&list[i]))
	}
	return resp
}

type CreateItemRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Brand       *string  `json:"brand"`
	Size        *string  `json:"size"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Photos      []string `json:"photos"`
	MinPrice    *float64 `json:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice"`
}

func (h *ItemHandler) CreateForRequest(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.CreateForRequest(c.Request().Context(), requestID, currentUID(c), service.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Brand:       req.Brand,
		Size:        req.Size,
		Category:    req.Category,
		Condition:   req.Condition,
		Photos:      req.Photos,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) ListByRequest(c echo.Context) error {
	requestID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	list, err := h.svc.ListByRequest(c.Request().Context(), requestID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	return c.JSON(http.StatusOK, toItemListResponse(list))
}

func (h *ItemHandler) ListMine(c echo.Context) error {
	uid := currentUID(c)
	profile, err := h.profileSvc.Get(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("profile_required", "profile required"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	list, err := h.svc.ListForUser(c.Request().Context(), uid, profile.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch items"))
	}
	return c.JSON(http.StatusOK, toItemListResponse(list))
}

type ApproveItemRequest struct {
	ApprovedPrice *float64 `json:"approvedPrice"`
}

func (h *ItemHandler) Approve(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ApproveItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.Approve(c.Request().Context(), id, currentUID(c), req.ApprovedPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

type CounterOfferRequest struct {
	MinPrice *float64 `json:"minPrice"`
	MaxPrice *float64 `json:"maxPrice"`
}

func (h *ItemHandler) CounterOffer(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req CounterOfferRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.CounterOffer(c.Request().Context(), id, currentUID(c), req.MinPrice, req.MaxPrice)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Decline(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	item, err := h.svc.Decline(c.Request().Context(), id, currentUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

type ListItemRequest struct {
	PlatformListedOn *string `json:"platformListedOn"`
}

func (h *ItemHandler) ListForSale(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ListItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.List(c.Request().Context(), id, currentUID(c), req.PlatformListedOn)
	if err != nil {
		if err == service.ErrConflict {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "item must be approved before listing"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

type MarkSoldRequest struct {
	SalePrice float64 `json:"salePrice"`
}

type MarkSoldResponse struct {
	Item        ItemResponse        `json:"item"`
	Transaction TransactionResponse `json:"transaction"`
}

type TransactionResponse struct {
	ID            uint64  `json:"id"`
	ItemID        uint64  `json:"itemId"`
	RequestID     *uint64 `json:"requestId,omitempty"`
	SellerID      string  `json:"sellerId"`
	ReusseID      string  `json:"reusseId"`
	SalePrice     float64 `json:"salePrice"`
	SellerEarning float64 `json:"sellerEarning"`
	ReusseEarning float64 `json:"reusseEarning"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

func toTransactionResponse(t *model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		ItemID:        t.ItemID,
		RequestID:     t.RequestID,
		SellerID:      t.SellerID,
		ReusseID:      t.ReusseID,
		SalePrice:     t.SalePrice,
		SellerEarning: t.SellerEarning,
		ReusseEarning: t.ReusseEarning,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ItemHandler) MarkSold(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req MarkSoldRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	result, err := h.svc.MarkSold(c.Request().Context(), id, currentUID(c), req.SalePrice)
	if err != nil {
		if err == service.ErrConflict {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "item must be listed before selling"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, MarkSoldResponse{
		Item:        toItemResponse(result.Item),
		Transaction: toTransactionResponse(result.Transaction),
	})
}
