package storage

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage captures the read-only S3 operations the source loader needs.
type ObjectStorage interface {
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	GetObject(ctx context.Context, key string) ([]byte, error)
}

// LatestSpreadsheet returns the most recently modified .csv or .xlsx object under prefix.
func LatestSpreadsheet(ctx context.Context, store ObjectStorage, prefix string) (ObjectInfo, error) {
	objects, err := store.ListObjects(ctx, prefix)
	if err != nil {
		return ObjectInfo{}, err
	}

	candidates := make([]ObjectInfo, 0, len(objects))
	for _, o := range objects {
		key := strings.ToLower(o.Key)
		if strings.HasSuffix(key, ".csv") || strings.HasSuffix(key, ".xlsx") {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return ObjectInfo{}, ErrObjectNotFound
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].LastModified.After(candidates[j].LastModified)
	})
	return candidates[0], nil
}
