package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/service"
)

type EarningsHandler struct {
	svc        service.EarningsService
	profileSvc service.ProfileService
}

func NewEarningsHandler(svc service.EarningsService, profileSvc service.ProfileService) *EarningsHandler {
	return &EarningsHandler{svc: svc, profileSvc: profileSvc}
}

type EarningsResponse struct {
	Total        float64               `json:"total"`
	Transactions []TransactionResponse `json:"transactions"`
}

func (h *EarningsHandler) Get(c echo.Context) error {
	uid := currentUID(c)
	profile, err := h.profileSvc.Get(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("profile_required", "profile required"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch earnings"))
	}
	earnings, err := h.svc.ForUser(c.Request().Context(), uid, profile.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch earnings"))
	}
	resp := EarningsResponse{
		Total:        earnings.Total,
		Transactions: make([]TransactionResponse, 0, len(earnings.Transactions)),
	}
	for i := range earnings.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(&earnings.Transactions[i]))
	}
	return c.JSON(http.StatusOK, resp)
}
