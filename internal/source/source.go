// Package source fetches the raw sales export and turns it into parsed rows,
// substituting the built-in sample rows whenever the export is unusable.
package source

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/salesboard/internal/sheet"
)

var (
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrEmptyPayload      = errors.New("empty or malformed payload")
)

// Fetcher retrieves the raw export bytes.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]byte, error)
}

type Status string

const (
	StatusOK           Status = "ok"
	StatusFetchFailed  Status = "fetch_failed"
	StatusEmptyPayload Status = "empty_payload"
	StatusSample       Status = "sample"
)

// Result is the outcome of one load. Rows is never empty: on any failure it holds
// the sample rows and Status/Err say why.
type Result struct {
	RunID       string
	Source      string
	Status      Status
	Err         error
	Rows        []sheet.RawRow
	PayloadHash string
	FetchedAt   time.Time
}

// Fallback reports whether Rows came from the sample dataset.
func (r Result) Fallback() bool {
	return r.Status != StatusOK
}

// Reason returns the error text, or "" on success.
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type Loader struct {
	fetcher Fetcher
	opts    sheet.Options
	now     func() time.Time
}

type Option func(*Loader)

// WithDelimiter forces a field delimiter instead of detecting it.
func WithDelimiter(d rune) Option {
	return func(l *Loader) { l.opts.Delimiter = d }
}

func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// NewLoader builds a loader. A nil fetcher always yields the sample rows.
func NewLoader(fetcher Fetcher, opts ...Option) *Loader {
	l := &Loader{fetcher: fetcher, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches and parses the export. It never fails; see Result.
func (l *Loader) Load(ctx context.Context) Result {
	res := Result{RunID: uuid.NewString(), Source: "sample", FetchedAt: l.now()}

	if l.fetcher == nil {
		return l.sample(res, StatusSample, nil)
	}
	res.Source = l.fetcher.Name()

	payload, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return l.sample(res, StatusFetchFailed, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrSourceUnavailable, err)))
	}

	text, err := sheet.Text(payload)
	if err != nil {
		return l.sample(res, StatusEmptyPayload, pkgerrors.WithStack(fmt.Errorf("%w: %w", ErrEmptyPayload, err)))
	}

	rows := sheet.ParseWith(text, l.opts)
	if len(rows) == 0 {
		return l.sample(res, StatusEmptyPayload, pkgerrors.WithStack(ErrEmptyPayload))
	}

	res.Status = StatusOK
	res.Rows = rows
	res.PayloadHash = hash(payload)

	log.Debug().
		Str("run_id", res.RunID).
		Str("source", res.Source).
		Int("rows", len(rows)).
		Msg("source: export loaded")

	return res
}

func (l *Loader) sample(res Result, status Status, err error) Result {
	res.Status = status
	res.Err = err
	res.Rows = SampleRows()
	res.PayloadHash = hash([]byte(sampleCSV))

	if err != nil {
		log.Warn().
			Stack().
			Err(err).
			Str("run_id", res.RunID).
			Str("source", res.Source).
			Str("status", string(status)).
			Msg("source: falling back to sample data")
	}
	return res
}

func hash(payload []byte) string {
	sum := sha1.Sum(payload)
	return hex.EncodeToString(sum[:])
}
