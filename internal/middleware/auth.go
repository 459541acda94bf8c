package middleware

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/reusse-app/backend/internal/model"
	"github.com/reusse-app/backend/internal/repository"
)

type AuthMiddleware struct {
	authClient *auth.Client
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(ctx context.Context, projectID string, userRepo repository.UserRepository) (*AuthMiddleware, error) {
	if projectID == "" {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "FIREBASE_PROJECT_ID is not set")
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}
	return &AuthMiddleware{authClient: client, userRepo: userRepo}, nil
}

// RequireAuth verifies the bearer token, stores the uid on the context,
// and keeps the local users row in sync with the token claims.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authz := c.Request().Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := m.authClient.VerifyIDToken(c.Request().Context(), tokenStr)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
		}
		c.Set("uid", token.UID)
		m.syncUser(c.Request().Context(), token)
		return next(c)
	}
}

// syncUser is best-effort: the identity provider owns user records, the
// local row is a join-friendly mirror.
func (m *AuthMiddleware) syncUser(ctx context.Context, token *auth.Token) {
	if m.userRepo == nil {
		return
	}
	u := &model.User{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		u.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		parts := strings.SplitN(name, " ", 2)
		u.FirstName = parts[0]
		if len(parts) > 1 {
			u.LastName = parts[1]
		}
	}
	if picture, ok := token.Claims["picture"].(string); ok && picture != "" {
		u.ProfileImageURL = &picture
	}
	_ = m.userRepo.Upsert(ctx, u)
}
