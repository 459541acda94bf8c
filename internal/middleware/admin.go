package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

// RequireAdmin gates a route group to users whose profile role is
// admin. It assumes RequireAuth already ran and set the uid.
func RequireAdmin(profileRepo repository.ProfileRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, _ := c.Get("uid").(string)
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			profile, err := profileRepo.FindByUser(c.Request().Context(), uid)
			if err != nil || profile.Role != model.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
