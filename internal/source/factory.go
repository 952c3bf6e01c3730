package source

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/drive"
	"github.com/andresuchdata/salesboard/internal/storage"
)

// NewFetcher builds the fetcher selected by cfg.Source.Kind. The sample kind has
// no fetcher and returns nil.
func NewFetcher(ctx context.Context, cfg *config.Config) (Fetcher, error) {
	switch cfg.Source.Kind {
	case "", "sample":
		return nil, nil
	case "http":
		if cfg.Source.URL == "" {
			return nil, fmt.Errorf("SOURCE_URL is required for http source")
		}
		return NewHTTPFetcher(cfg.Source.URL, time.Duration(cfg.Source.TimeoutSeconds)*time.Second), nil
	case "file":
		if cfg.Source.File == "" {
			return nil, fmt.Errorf("SOURCE_FILE is required for file source")
		}
		return &FileFetcher{Path: cfg.Source.File}, nil
	case "drive":
		if cfg.Drive.FileID == "" && cfg.Drive.FolderID == "" {
			return nil, fmt.Errorf("DRIVE_FILE_ID or DRIVE_FOLDER_ID is required for drive source")
		}
		svc, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON)
		if err != nil {
			return nil, err
		}
		return &DriveFetcher{Locator: drive.NewLocator(svc, cfg.Drive.FileID, cfg.Drive.FolderID)}, nil
	case "object":
		store, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Object.Endpoint,
			AccessKey: cfg.Object.AccessKey,
			SecretKey: cfg.Object.SecretKey,
			Bucket:    cfg.Object.Bucket,
			Region:    cfg.Object.Region,
			UseSSL:    cfg.Object.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return &ObjectFetcher{Store: store, Key: cfg.Object.Key, Prefix: cfg.Object.Prefix}, nil
	}
	return nil, fmt.Errorf("unknown SOURCE_KIND %q", cfg.Source.Kind)
}

// ParseDelimiter maps the SOURCE_DELIMITER setting to a rune; empty means detect.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", `\t`, "\t":
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("invalid SOURCE_DELIMITER %q", s)
	}
	return r[0], nil
}

// NewLoaderFromConfig wires the configured fetcher and delimiter into a Loader.
func NewLoaderFromConfig(ctx context.Context, cfg *config.Config) (*Loader, error) {
	fetcher, err := NewFetcher(ctx, cfg)
	if err != nil {
		return nil, err
	}
	delim, err := ParseDelimiter(cfg.Source.Delimiter)
	if err != nil {
		return nil, err
	}
	return NewLoader(fetcher, WithDelimiter(delim)), nil
}
