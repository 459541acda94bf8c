package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Client uploads item photos to a GCS bucket and returns public URLs.
type Client struct {
	client *storage.Client
	bucket string
}

func NewClient(ctx context.Context, bucket, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &Client{client: c, bucket: bucket}, nil
}

func (c *Client) UploadPhoto(ctx context.Context, r io.Reader, contentType string) (string, error) {
	name := fmt.Sprintf("photos/%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), extFor(contentType))

	obj := c.client.Bucket(c.bucket).Object(name)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	if _, err := io.Copy(w, r); err != nil {
		return "", fmt.Errorf("copy to bucket: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close writer: %w", err)
	}
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("set acl: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucket, name), nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func extFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
