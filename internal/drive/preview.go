package drive

import (
	"context"
	"fmt"

	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/pipeline"
	"github.com/andresuchdata/salesboard/internal/sheet"
)

// PreviewResult summarizes what the pipeline makes of one Drive file.
type PreviewResult struct {
	File      *File                     `json:"file"`
	Rows      int                       `json:"rows"`
	Canonical int                       `json:"canonical"`
	Dropped   int                       `json:"dropped"`
	Counts    map[domain.EntityType]int `json:"counts"`
}

type PreviewService struct {
	files Files
}

func NewPreviewService(files Files) *PreviewService {
	return &PreviewService{files: files}
}

// Preview downloads fileID and runs the pipeline over it without touching the
// configured source.
func (s *PreviewService) Preview(ctx context.Context, fileID string) (*PreviewResult, error) {
	f, err := s.files.GetFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	payload, err := s.files.Fetch(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
	}
	text, err := sheet.Text(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
	}

	ds, stats := pipeline.Process(text)
	return &PreviewResult{
		File:      f,
		Rows:      stats.Rows,
		Canonical: stats.Canonical,
		Dropped:   stats.Dropped,
		Counts:    ds.Counts(),
	}, nil
}
