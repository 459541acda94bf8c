package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/reusse-app/backend/internal/config"
	"github.com/reusse-app/backend/internal/handler"
	appmw "github.com/reusse-app/backend/internal/middleware"
	"github.com/reusse-app/backend/internal/repository"
	"github.com/reusse-app/backend/internal/service"
	appstorage "github.com/reusse-app/backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e *echo.Echo
}

func New(ctx context.Context, cfg *config.Config, db *gorm.DB, storageClient *appstorage.Client) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	itemRepo := repository.NewItemRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	notifySvc := service.NewNotificationService(notificationRepo)
	profileSvc := service.NewProfileService(profileRepo)
	requestSvc := service.NewRequestService(requestRepo, profileRepo, notifySvc, cfg.StrictStatusFlow)
	itemSvc := service.NewItemService(itemRepo, requestRepo, requestSvc, notifySvc)
	meetingSvc := service.NewMeetingService(meetingRepo, requestRepo, requestSvc, notifySvc)
	messageSvc := service.NewMessageService(messageRepo, userRepo)
	adminSvc := service.NewAdminService(userRepo, profileRepo, requestRepo, notifySvc)
	earningsSvc := service.NewEarningsService(transactionRepo)

	profileHandler := handler.NewProfileHandler(profileSvc)
	requestHandler := handler.NewRequestHandler(requestSvc, profileSvc)
	itemHandler := handler.NewItemHandler(itemSvc, profileSvc)
	meetingHandler := handler.NewMeetingHandler(meetingSvc)
	messageHandler := handler.NewMessageHandler(messageSvc)
	notificationHandler := handler.NewNotificationHandler(notifySvc)
	adminHandler := handler.NewAdminHandler(adminSvc)
	earningsHandler := handler.NewEarningsHandler(earningsSvc, profileSvc)

	authMw, err := appmw.NewAuthMiddleware(ctx, cfg.FirebaseProjectID, userRepo)
	if err != nil {
		return nil, err
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
	})

	api := e.Group("/api", authMw.RequireAuth)

	api.GET("/profile", profileHandler.Get)
	api.POST("/profile", profileHandler.Create)
	api.PATCH("/profile", profileHandler.Update)

	api.GET("/requests", requestHandler.List)
	api.GET("/requests/available", requestHandler.ListAvailable)
	api.GET("/requests/:id", requestHandler.Get)
	api.POST("/requests", requestHandler.Create)
	api.POST("/requests/:id/accept", requestHandler.Accept)
	api.PATCH("/requests/:id/cancel", requestHandler.Cancel)
	api.PATCH("/requests/:id/complete", requestHandler.Complete)

	api.GET("/requests/:id/items", itemHandler.ListByRequest)
	api.POST("/requests/:id/items", itemHandler.CreateForRequest)
	api.GET("/items", itemHandler.ListMine)
	api.POST("/items/:id/approve", itemHandler.Approve)
	api.POST("/items/:id/counter-offer", itemHandler.CounterOffer)
	api.POST("/items/:id/decline", itemHandler.Decline)
	api.POST("/items/:id/list", itemHandler.ListForSale)
	api.POST("/items/:id/mark-sold", itemHandler.MarkSold)

	api.GET("/requests/:id/meetings", meetingHandler.ListByRequest)
	api.POST("/requests/:id/meetings", meetingHandler.Create)
	api.GET("/meetings", meetingHandler.ListMine)
	api.PATCH("/meetings/:meetingId/cancel", meetingHandler.Cancel)
	api.PATCH("/meetings/:meetingId/reschedule", meetingHandler.Reschedule)

	api.GET("/messages/conversations", messageHandler.Conversations)
	api.GET("/messages/:userId", messageHandler.Thread)
	api.POST("/messages", messageHandler.Send)

	api.GET("/notifications", notificationHandler.List)
	api.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	api.GET("/earnings", earningsHandler.Get)

	if storageClient != nil {
		uploadHandler := handler.NewUploadHandler(storageClient)
		api.POST("/uploads", uploadHandler.Upload)
	}

	admin := api.Group("/admin", appmw.RequireAdmin(profileRepo))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/applications", adminHandler.ListApplications)
	admin.PATCH("/applications/:userId", adminHandler.UpdateApplication)
	admin.GET("/stats", adminHandler.Stats)

	return &Server{e: e}, nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
