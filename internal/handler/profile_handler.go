package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/service"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	ID                     uint64  `json:"id"`
	UserID                 string  `json:"userId"`
	Role                   string  `json:"role"`
	Phone                  *string `json:"phone,omitempty"`
	Address                *string `json:"address,omitempty"`
	City                   *string `json:"city,omitempty"`
	PostalCode             *string `json:"postalCode,omitempty"`
	Department             *string `json:"department,omitempty"`
	Bio                    *string `json:"bio,omitempty"`
	Experience             *string `json:"experience,omitempty"`
	SiretNumber            *string `json:"siretNumber,omitempty"`
	Status                 string  `json:"status"`
	PreferredContactMethod string  `json:"preferredContactMethod"`
	CreatedAt              string  `json:"createdAt"`
	UpdatedAt              string  `json:"updatedAt"`
}

func toProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                     p.ID,
		UserID:                 p.UserID,
		Role:                   string(p.Role),
		Phone:                  p.Phone,
		Address:                p.Address,
		City:                   p.City,
		PostalCode:             p.PostalCode,
		Department:             p.Department,
		Bio:                    p.Bio,
		Experience:             p.Experience,
		SiretNumber:            p.SiretNumber,
		Status:                 string(p.Status),
		PreferredContactMethod: p.PreferredContactMethod,
		CreatedAt:              p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:              p.UpdatedAt.Format(time.RFC3339),
	}
}

type CreateProfileRequest struct {
	Role                   string  `json:"role"`
	Phone                  *string `json:"phone"`
	Address                *string `json:"address"`
	City                   *string `json:"city"`
	PostalCode             *string `json:"postalCode"`
	Department             *string `json:"department"`
	Bio                    *string `json:"bio"`
	Experience             *string `json:"experience"`
	SiretNumber            *string `json:"siretNumber"`
	PreferredContactMethod string  `json:"preferredContactMethod"`
}

type UpdateProfileRequest struct {
	Phone                  *string `json:"phone"`
	Address                *string `json:"address"`
	City                   *string `json:"city"`
	PostalCode             *string `json:"postalCode"`
	Department             *string `json:"department"`
	Bio                    *string `json:"bio"`
	Experience             *string `json:"experience"`
	SiretNumber            *string `json:"siretNumber"`
	PreferredContactMethod *string `json:"preferredContactMethod"`
}

func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.svc.Get(c.Request().Context(), currentUID(c))
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *ProfileHandler) Create(c echo.Context) error {
	var req CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	profile, err := h.svc.Create(c.Request().Context(), currentUID(c), model.Role(req.Role), service.ProfileInput{
		Phone:                  req.Phone,
		Address:                req.Address,
		City:                   req.City,
		PostalCode:             req.PostalCode,
		Department:             req.Department,
		Bio:                    req.Bio,
		Experience:             req.Experience,
		SiretNumber:            req.SiretNumber,
		PreferredContactMethod: req.PreferredContactMethod,
	})
	if err != nil {
		if err == service.ErrConflict {
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "profile already exists"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	updates := map[string]interface{}{}
	setIf(updates, "phone", req.Phone)
	setIf(updates, "address", req.Address)
	setIf(updates, "city", req.City)
	setIf(updates, "postal_code", req.PostalCode)
	setIf(updates, "department", req.Department)
	setIf(updates, "bio", req.Bio)
	setIf(updates, "experience", req.Experience)
	setIf(updates, "siret_number", req.SiretNumber)
	setIf(updates, "preferred_contact_method", req.PreferredContactMethod)

	profile, err := h.svc.Update(c.Request().Context(), currentUID(c), updates)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

func setIf(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = *v
	}
}
