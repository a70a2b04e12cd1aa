package helpers

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// Storage resolves stored object keys to time-limited signed URLs.
// Services depend on this interface so tests can swap in a fake bucket.
type Storage interface {
	SignedGetURL(ctx context.Context, key string) (string, error)
	SignedPutURL(ctx context.Context, key string) (string, error)
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSBucket signs URLs against a single bucket.
type GCSBucket struct {
	Client *storage.Client
	Bucket string
	TTL    time.Duration
}

func NewGCSBucket(client *storage.Client, bucket string, ttl time.Duration) *GCSBucket {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &GCSBucket{Client: client, Bucket: bucket, TTL: ttl}
}

func (b *GCSBucket) SignedGetURL(_ context.Context, key string) (string, error) {
	return b.Client.Bucket(b.Bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(b.TTL),
	})
}

func (b *GCSBucket) SignedPutURL(_ context.Context, key string) (string, error) {
	return b.Client.Bucket(b.Bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     time.Now().Add(b.TTL),
		ContentType: "image/*",
	})
}

var _ Storage = (*GCSBucket)(nil)
