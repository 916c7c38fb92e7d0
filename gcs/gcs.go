package gcs

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

var Client *storage.Client

// Bucket is where listing images land; empty means upload is disabled.
var Bucket string

// InitGCS connects to Google Cloud Storage when GCS_BUCKET is configured.
// Without a bucket the server still runs, listings just cannot carry images.
func InitGCS() {
	Bucket = os.Getenv("GCS_BUCKET")
	if Bucket == "" {
		log.Println("Warning: GCS_BUCKET not set, image upload disabled")
		return
	}

	ctx := context.Background()
	var opts []option.ClientOption
	if credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}

	var err error
	Client, err = storage.NewClient(ctx, opts...)
	if err != nil {
		log.Fatalf("Failed to connect to Google Cloud Storage: %v", err)
	}

	if _, err := Client.Bucket(Bucket).Attrs(ctx); err != nil {
		log.Fatalf("Cannot access bucket %s: %v", Bucket, err)
	}
	log.Printf("Bucket %s ready", Bucket)
}

func Close() {
	if Client != nil {
		Client.Close()
	}
}
