package drive

import (
	"context"
	"errors"
	"fmt"
)

var ErrNoSpreadsheet = errors.New("no spreadsheet found in folder")

// Locator resolves which Drive file holds the current sales export: a pinned file
// id, or else the newest spreadsheet in a folder.
type Locator struct {
	files    Files
	fileID   string
	folderID string
}

func NewLocator(files Files, fileID, folderID string) *Locator {
	return &Locator{files: files, fileID: fileID, folderID: folderID}
}

func (l *Locator) Locate(ctx context.Context) (*File, error) {
	if l.fileID != "" {
		return l.files.GetFile(ctx, l.fileID)
	}

	files, err := l.files.ListFiles(ctx, l.folderID)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if f.IsSpreadsheet() {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoSpreadsheet, l.folderID)
}

// Download locates the export and returns its contents.
func (l *Locator) Download(ctx context.Context) (*File, []byte, error) {
	f, err := l.Locate(ctx)
	if err != nil {
		return nil, nil, err
	}
	payload, err := l.files.Fetch(ctx, f)
	if err != nil {
		return f, nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	return f, payload, nil
}
