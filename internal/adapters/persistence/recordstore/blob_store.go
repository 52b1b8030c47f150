package recordstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"clinic-queue/internal/adapters/persistence/blob"
)

const documentExt = ".json"

// BlobStore keeps each collection as one `<name>.json` object in a blob store.
type BlobStore struct {
	blobs blob.Store
}

// NewBlobStore wraps a blob backend (filesystem, S3 or memory).
func NewBlobStore(blobs blob.Store) *BlobStore {
	return &BlobStore{blobs: blobs}
}

func (s *BlobStore) Read(ctx context.Context, name string) ([]byte, error) {
	_, rc, err := s.blobs.Get(ctx, name+documentExt)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (s *BlobStore) Write(ctx context.Context, name string, data []byte) error {
	_, err := s.blobs.Put(ctx, name+documentExt, bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
	})
	return err
}

func (s *BlobStore) Delete(ctx context.Context, name string) (bool, error) {
	return s.blobs.Delete(ctx, name+documentExt)
}

func (s *BlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	infos, err := s.blobs.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if !strings.HasSuffix(info.Key, documentExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(info.Key, documentExt))
	}
	return names, nil
}

// Ping lists a prefix no collection uses, which exercises the backend's
// credentials and reachability without reading documents.
func (s *BlobStore) Ping(ctx context.Context) error {
	_, err := s.blobs.List(ctx, "_ping/")
	return err
}

func (s *BlobStore) Driver() string { return string(s.blobs.Driver()) }

func (s *BlobStore) Close() error { return nil }
