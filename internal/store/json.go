package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps each dataset in <dir>/<bucket>.json.
type JSONStore struct {
	typed
	dir string
}

type jsonBuckets struct {
	dir string
}

// NewJSONStore creates dir if needed and returns a store rooted there.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		return nil, errors.New("store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &JSONStore{typed: typed{b: jsonBuckets{dir: dir}}, dir: dir}, nil
}

// Path returns the file backing bucket.
func (s *JSONStore) Path(bucket string) string {
	return bucketPath(s.dir, bucket)
}

// Close is a no-op.
func (s *JSONStore) Close() error { return nil }

func bucketPath(dir, bucket string) string {
	return filepath.Join(dir, bucket+".json")
}

func (j jsonBuckets) get(ctx context.Context, bucket string, target any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	data, err := os.ReadFile(bucketPath(j.dir, bucket))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", bucket, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("decode %s: %w", bucket, err)
	}
	return true, nil
}

func (j jsonBuckets) put(ctx context.Context, bucket string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", bucket, err)
	}
	data = append(data, '\n')

	// Write to a sibling temp file and rename so readers never see a
	// half-written dataset.
	tmp, err := os.CreateTemp(j.dir, bucket+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", bucket, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", bucket, err)
	}
	if err := os.Rename(tmp.Name(), bucketPath(j.dir, bucket)); err != nil {
		return fmt.Errorf("replace %s: %w", bucket, err)
	}
	return nil
}
