package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fcinventory/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   string
	Type   string
}

// fakeS3 answers PUT object and ListObjectsV2 calls with path-style addressing
func fakeS3(t *testing.T) (*httptest.Server, func() []recordedRequest) {
	var (
		mu       sync.Mutex
		requests []recordedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   string(body),
			Type:   r.Header.Get("Content-Type"),
		})
		mu.Unlock()

		switch {
		case r.Method == http.MethodPut:
			w.Header().Set("ETag", `"etag"`)
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodGet && r.URL.Query().Get("list-type") == "2":
			w.Header().Set("Content-Type", "application/xml")
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>inventory</Name>
  <Prefix>backups/</Prefix>
  <KeyCount>1</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>false</IsTruncated>
  <Contents>
    <Key>backups/inventory_backup_20240301_120000.zip</Key>
    <LastModified>2024-03-01T12:00:00.000Z</LastModified>
    <Size>42</Size>
  </Contents>
</ListBucketResult>`)
		default:
			w.WriteHeader(http.StatusNotImplemented)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, func() []recordedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedRequest(nil), requests...)
	}
}

func testStorageConfig(endpoint string) *config.StorageConfig {
	return &config.StorageConfig{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		Bucket:          "inventory",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		UsePathStyle:    true,
		Prefix:          "backups/",
	}
}

func TestNewS3ArchiveStore_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ArchiveStore(ctx, nil)
		assert.ErrorContains(t, err, "configuration is required")
	})

	t.Run("missing bucket", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.Bucket = ""
		_, err := NewS3ArchiveStore(ctx, cfg)
		assert.ErrorContains(t, err, "bucket is required")
	})

	t.Run("half a key pair", func(t *testing.T) {
		cfg := testStorageConfig("http://localhost:9000")
		cfg.SecretAccessKey = ""
		_, err := NewS3ArchiveStore(ctx, cfg)
		assert.ErrorContains(t, err, "must be set together")
	})

	t.Run("valid config", func(t *testing.T) {
		store, err := NewS3ArchiveStore(ctx, testStorageConfig("localhost:9000"))
		require.NoError(t, err)
		assert.Equal(t, "inventory", store.Bucket())
		assert.Equal(t, "backups/inventory_backup_1.zip", store.KeyFor("/tmp/x/inventory_backup_1.zip"))
	})
}

func TestS3ArchiveStore_UploadArchive(t *testing.T) {
	srv, requests := fakeS3(t)
	store, err := NewS3ArchiveStore(context.Background(), testStorageConfig(srv.URL))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "inventory_backup_20240301_120000.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK-archive-bytes"), 0o600))

	key, err := store.UploadArchive(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "backups/inventory_backup_20240301_120000.zip", key)

	got := requests()
	require.Len(t, got, 1)
	assert.Equal(t, http.MethodPut, got[0].Method)
	assert.Equal(t, "/inventory/backups/inventory_backup_20240301_120000.zip", got[0].Path)
	assert.Equal(t, ArchiveContentType, got[0].Type)
	assert.Contains(t, got[0].Body, "PK-archive-bytes")
}

func TestS3ArchiveStore_UploadMissingFile(t *testing.T) {
	store, err := NewS3ArchiveStore(context.Background(), testStorageConfig("http://localhost:9000"))
	require.NoError(t, err)

	_, err = store.UploadArchive(context.Background(), filepath.Join(t.TempDir(), "absent.zip"))
	assert.ErrorContains(t, err, "failed to open archive")
}

func TestS3ArchiveStore_ListArchives(t *testing.T) {
	srv, _ := fakeS3(t)
	store, err := NewS3ArchiveStore(context.Background(), testStorageConfig(srv.URL))
	require.NoError(t, err)

	archives, err := store.ListArchives(context.Background())
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "backups/inventory_backup_20240301_120000.zip", archives[0].Key)
	assert.Equal(t, int64(42), archives[0].Size)
	assert.Equal(t, 2024, archives[0].LastModified.Year())
}
