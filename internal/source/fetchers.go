package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/andresuchdata/salesboard/internal/drive"
	"github.com/andresuchdata/salesboard/internal/storage"
)

// HTTPFetcher downloads a published sheet, e.g. a Google Sheets "output=csv" link.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Name() string { return "http" }

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, f.URL)
	}
	return io.ReadAll(resp.Body)
}

// FileFetcher reads a local CSV or XLSX export.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}
	return data, nil
}

// DriveFetcher downloads the export from Google Drive.
type DriveFetcher struct {
	Locator *drive.Locator
}

func (f *DriveFetcher) Name() string { return "drive" }

func (f *DriveFetcher) Fetch(ctx context.Context) ([]byte, error) {
	_, payload, err := f.Locator.Download(ctx)
	return payload, err
}

// ObjectFetcher reads the export from S3-compatible storage. Without a key the
// newest spreadsheet under Prefix is used.
type ObjectFetcher struct {
	Store  storage.ObjectStorage
	Key    string
	Prefix string
}

func (f *ObjectFetcher) Name() string { return "object" }

func (f *ObjectFetcher) Fetch(ctx context.Context) ([]byte, error) {
	key := f.Key
	if key == "" {
		latest, err := storage.LatestSpreadsheet(ctx, f.Store, f.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to locate export under %q: %w", f.Prefix, err)
		}
		key = latest.Key
	}
	return f.Store.GetObject(ctx, key)
}
