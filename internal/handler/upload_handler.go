package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	appstorage "github.com/reusse-app/backend/internal/storage"
)

type UploadHandler struct {
	client *appstorage.Client
}

func NewUploadHandler(client *appstorage.Client) *UploadHandler {
	return &UploadHandler{client: client}
}

// Upload accepts a multipart photo and returns its public URL. The
// client attaches the URL to items it creates.
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "file is required"))
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "failed to read file"))
	}
	defer src.Close()

	contentType := fh.Header.Get("Content-Type")
	url, err := h.client.UploadPhoto(c.Request().Context(), src, contentType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to upload file"))
	}
	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}
