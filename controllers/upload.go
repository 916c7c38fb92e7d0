package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"wonderlust/gcs"
	"wonderlust/models"
)

var errUploadDisabled = errors.New("image storage is not configured")

// ObjectName builds a unique GCS object name for an uploaded image.
// UUID plus nanosecond timestamp keeps concurrent uploads from colliding.
func ObjectName(folder, contentType string) string {
	extension := "jpg"
	switch strings.ToLower(contentType) {
	case "image/png":
		extension = "png"
	case "image/jpeg", "image/jpg":
		extension = "jpeg"
	case "image/gif":
		extension = "gif"
	}
	return fmt.Sprintf("%s/%s_%d.%s", folder, uuid.NewString(), time.Now().UnixNano(), extension)
}

// uploadListingImage stores an uploaded image in GCS and returns the
// public URL plus object name pair the listing records. Blocks until the
// storage write finishes or fails.
func uploadListingImage(reader io.Reader, contentType string) (models.Image, error) {
	if gcs.Client == nil {
		return models.Image{}, errUploadDisabled
	}

	ctx := context.Background()
	objectName := ObjectName("listing_images", contentType)

	writer := gcs.Client.Bucket(gcs.Bucket).Object(objectName).NewWriter(ctx)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	writer.ContentType = contentType

	if _, err := io.Copy(writer, reader); err != nil {
		return models.Image{}, fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := writer.Close(); err != nil {
		return models.Image{}, fmt.Errorf("failed to close GCS writer: %v", err)
	}

	return models.Image{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", gcs.Bucket, objectName),
		Filename: objectName,
	}, nil
}
