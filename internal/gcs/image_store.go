// Package gcs stores product images in a Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/nikolayk812/snexa/internal/port"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const defaultPublicBaseURL = "https://storage.googleapis.com"

// ImageStore writes objects to one bucket. Objects are expected to be public
// through bucket-level IAM, so no per-object ACL is set.
type ImageStore struct {
	Client        *storage.Client
	Bucket        string
	PublicBaseURL string
}

var _ port.ImageStore = (*ImageStore)(nil)

func NewClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}

	return client, nil
}

func NewImageStore(client *storage.Client, bucket string) (*ImageStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is nil")
	}
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, fmt.Errorf("bucket is empty")
	}

	return &ImageStore{
		Client:        client,
		Bucket:        bucket,
		PublicBaseURL: defaultPublicBaseURL,
	}, nil
}

func (s *ImageStore) Put(ctx context.Context, objectPath, contentType string, data []byte) (string, error) {
	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if objectPath == "" {
		return "", fmt.Errorf("objectPath is empty")
	}

	w := s.Client.Bucket(s.Bucket).Object(objectPath).NewWriter(ctx)
	if ct := strings.TrimSpace(contentType); ct != "" {
		w.ContentType = ct
	}
	w.CacheControl = "public, max-age=86400"
	w.Metadata = map[string]string{
		"uploadedAt": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("w.Write: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("w.Close: %w", err)
	}

	return PublicURL(s.PublicBaseURL, s.Bucket, objectPath), nil
}

// Delete ignores objects that are already gone.
func (s *ImageStore) Delete(ctx context.Context, objectPath string) error {
	objectPath = strings.TrimLeft(strings.TrimSpace(objectPath), "/")
	if objectPath == "" {
		return nil
	}

	err := s.Client.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("object[%s].Delete: %w", objectPath, err)
	}

	return nil
}

// List returns the object paths under prefix.
func (s *ImageStore) List(ctx context.Context, prefix string) ([]string, error) {
	it := s.Client.Bucket(s.Bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var paths []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		paths = append(paths, attrs.Name)
	}

	return paths, nil
}

func PublicURL(baseURL, bucket, objectPath string) string {
	if baseURL == "" {
		baseURL = defaultPublicBaseURL
	}

	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return strings.TrimRight(baseURL, "/") + "/" + bucket + "/" + strings.Join(segments, "/")
}
