package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type UserWithProfileResponse struct {
	User    model.User       `json:"user"`
	Profile *ProfileResponse `json:"profile"`
}

func toUserWithProfileResponse(list []service.UserWithProfile) []UserWithProfileResponse {
	resp := make([]UserWithProfileResponse, 0, len(list))
	for _, e := range list {
		entry := UserWithProfileResponse{User: e.User}
		if e.Profile != nil {
			p := toProfileResponse(e.Profile)
			entry.Profile = &p
		}
		resp = append(resp, entry)
	}
	return resp
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	list, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch users"))
	}
	return c.JSON(http.StatusOK, toUserWithProfileResponse(list))
}

func (h *AdminHandler) ListApplications(c echo.Context) error {
	list, err := h.svc.ListApplications(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch applications"))
	}
	return c.JSON(http.StatusOK, toUserWithProfileResponse(list))
}

type UpdateApplicationRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateApplication(c echo.Context) error {
	userID := c.Param("userId")
	var req UpdateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	profile, err := h.svc.UpdateApplication(c.Request().Context(), userID, model.ProfileStatus(req.Status))
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch stats"))
	}
	return c.JSON(http.StatusOK, stats)
}
