package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type RequestHandler struct {
	svc        service.RequestService
	profileSvc service.ProfileService
}

func NewRequestHandler(svc service.RequestService, profileSvc service.ProfileService) *RequestHandler {
	return &RequestHandler{svc: svc, profileSvc: profileSvc}
}

type RequestResponse struct {
	ID              uint64   `json:"id"`
	SellerID        string   `json:"sellerId"`
	ReusseID        *string  `json:"reusseId,omitempty"`
	ServiceType     string   `json:"serviceType"`
	Status          string   `json:"status"`
	ItemCount       int      `json:"itemCount"`
	EstimatedValue  *float64 `json:"estimatedValue,omitempty"`
	MeetingLocation *string  `json:"meetingLocation,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
	UpdatedAt       string   `json:"updatedAt"`
	CompletedAt     *string  `json:"completedAt,omitempty"`
}

func toRequestResponse(r *model.Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		SellerID:        r.SellerID,
		ReusseID:        r.ReusseID,
		ServiceType:     string(r.ServiceType),
		Status:          string(r.Status),
		ItemCount:       r.ItemCount,
		EstimatedValue:  r.EstimatedValue,
		MeetingLocation: r.MeetingLocation,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
	if r.CompletedAt != nil {
		s := r.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}
	return resp
}

func toRequestListResponse(list []model.Request) []RequestResponse {
	resp := make([]RequestResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toRequestResponse(&list[i]))
	}
	return resp
}

type CreateRequestRequest struct {
	ServiceType     string   `json:"serviceType"`
	ItemCount       int      `json:"itemCount"`
	EstimatedValue  *float64 `json:"estimatedValue"`
	MeetingLocation *string  `json:"meetingLocation"`
	Notes           *string  `json:"notes"`
}

func (h *RequestHandler) Create(c echo.Context) error {
	var req CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	created, err := h.svc.Create(c.Request().Context(), currentUID(c), service.CreateRequestInput{
		ServiceType:     model.ServiceType(req.ServiceType),
		ItemCount:       req.ItemCount,
		EstimatedValue:  req.EstimatedValue,
		MeetingLocation: req.MeetingLocation,
		Notes:           req.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toRequestResponse(created))
}

func (h *RequestHandler) List(c echo.Context) error {
	uid := currentUID(c)
	profile, err := h.profileSvc.Get(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("profile_required", "profile required"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch requests"))
	}
	list, err := h.svc.ListForUser(c.Request().Context(), uid, profile.Role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch requests"))
	}
	return c.JSON(http.StatusOK, toRequestListResponse(list))
}

func (h *RequestHandler) ListAvailable(c echo.Context) error {
	list, err := h.svc.ListAvailable(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch available requests"))
	}
	return c.JSON(http.StatusOK, toRequestListResponse(list))
}

func (h *RequestHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	req, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "request not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch request"))
	}
	return c.JSON(http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) Accept(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	req, err := h.svc.Accept(c.Request().Context(), id, currentUID(c))
	if err != nil {
		if err == service.ErrForbidden {
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "only approved resellers can accept requests"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	req, err := h.svc.Cancel(c.Request().Context(), id, currentUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(req))
}

func (h *RequestHandler) Complete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	req, err := h.svc.Complete(c.Request().Context(), id, currentUID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toRequestResponse(req))
}
