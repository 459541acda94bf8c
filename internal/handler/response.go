package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// currentUID reads the authenticated user id set by the auth middleware.
func currentUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// respondError maps service sentinels to their HTTP shape; anything
// unrecognized is treated as a validation failure from the service
// layer rather than an internal error, matching how services surface
// bad input as plain errors.
func respondError(c echo.Context, err error) error {
	switch err {
	case service.ErrNotFound:
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "not found"))
	case service.ErrForbidden:
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not authorized"))
	case service.ErrConflict:
		return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "conflicting state"))
	case service.ErrUnavailable:
		return c.JSON(http.StatusConflict, NewErrorResponse("unavailable", "request unavailable"))
	}
	return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
}
