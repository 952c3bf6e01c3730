package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	objects []ObjectInfo
	err     error
}

func (m memStore) ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	return m.objects, m.err
}

func (m memStore) GetObject(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrObjectNotFound
}

func TestLatestSpreadsheet(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	store := memStore{objects: []ObjectInfo{
		{Key: "exports/old.csv", LastModified: base},
		{Key: "exports/notes.txt", LastModified: base.Add(48 * time.Hour)},
		{Key: "exports/new.XLSX", LastModified: base.Add(24 * time.Hour)},
	}}

	got, err := LatestSpreadsheet(context.Background(), store, "exports/")
	require.NoError(t, err)
	assert.Equal(t, "exports/new.XLSX", got.Key)

	_, err = LatestSpreadsheet(context.Background(), memStore{}, "")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	boom := errors.New("denied")
	_, err = LatestSpreadsheet(context.Background(), memStore{err: boom}, "")
	assert.ErrorIs(t, err, boom)
}

func TestNewS3Client_Validation(t *testing.T) {
	_, err := NewS3Client(S3Config{})
	assert.Error(t, err)

	_, err = NewS3Client(S3Config{Endpoint: "s3.local"})
	assert.Error(t, err)

	_, err = NewS3Client(S3Config{Endpoint: "s3.local", AccessKey: "a", SecretKey: "b"})
	assert.Error(t, err)

	c, err := NewS3Client(S3Config{Endpoint: "https://s3.local:9000/", AccessKey: "a", SecretKey: "b", Bucket: "sales"})
	require.NoError(t, err)
	assert.Equal(t, "sales", c.bucket)
}

func TestSplitEndpoint(t *testing.T) {
	tests := []struct {
		in       string
		useSSL   bool
		host     string
		isSecure bool
	}{
		{"https://s3.example.com", false, "s3.example.com", true},
		{"http://minio:9000/", true, "minio:9000", false},
		{"minio:9000", true, "minio:9000", true},
		{"//minio:9000", false, "minio:9000", false},
	}
	for _, tt := range tests {
		host, secure := splitEndpoint(tt.in, tt.useSSL)
		assert.Equal(t, tt.host, host, tt.in)
		assert.Equal(t, tt.isSecure, secure, tt.in)
	}
}
