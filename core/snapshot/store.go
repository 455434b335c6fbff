package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"diffly/core/storage"

	"github.com/minio/minio-go/v7"
)

// Store persists and retrieves named snapshot archives.
type Store interface {
	// Save persists the archive under the given name, overwriting any
	// previous snapshot with the same name.
	Save(ctx context.Context, name string, a *Archive) error
	// Load retrieves the archive saved under the given name.
	Load(ctx context.Context, name string) (*Archive, error)
}

// FileStore keeps snapshots as JSON files in a local directory.
type FileStore struct {
	Dir string
}

// NewFileStore creates a file-backed snapshot store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".json")
}

func (s *FileStore) Save(ctx context.Context, name string, a *Archive) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory %s: %w", s.Dir, err)
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (*Archive, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", name, err)
	}
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return &a, nil
}

// ObjectStore keeps snapshots as JSON objects in an S3-compatible bucket.
type ObjectStore struct {
	client storage.Client
	bucket string
	region string
}

// NewObjectStore creates an object-backed snapshot store on the given
// bucket. The bucket is created on first save if it does not exist.
func NewObjectStore(client storage.Client, bucket, region string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, region: region}
}

func objectName(name string) string {
	return name + ".json"
}

func (s *ObjectStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *ObjectStore) Save(ctx context.Context, name string, a *Archive) error {
	if err := s.ensureBucket(ctx); err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName(name), bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}
	return nil
}

func (s *ObjectStore) Load(ctx context.Context, name string) (*Archive, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot %s: %w", name, err)
	}
	defer obj.Close()

	var a Archive
	if err := json.NewDecoder(obj).Decode(&a); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return &a, nil
}
