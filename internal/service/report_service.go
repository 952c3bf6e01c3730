package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/andresuchdata/salesboard/internal/cache"
	"github.com/andresuchdata/salesboard/internal/config"
	"github.com/andresuchdata/salesboard/internal/domain"
	"github.com/andresuchdata/salesboard/internal/pipeline"
	"github.com/andresuchdata/salesboard/internal/report"
	"github.com/andresuchdata/salesboard/internal/source"
)

// Loader supplies parsed rows for one pipeline run.
type Loader interface {
	Load(ctx context.Context) source.Result
}

// Snapshot is the output of one full load.
type Snapshot struct {
	Result  source.Result
	Dataset domain.Dataset
	Stats   pipeline.Stats
}

// Status is the outcome of the most recent load.
type Status struct {
	RunID        string                    `json:"run_id"`
	Source       string                    `json:"source"`
	Status       source.Status             `json:"status"`
	Fallback     bool                      `json:"fallback"`
	Reason       string                    `json:"reason,omitempty"`
	Rows         int                       `json:"rows"`
	Canonical    int                       `json:"canonical"`
	Dropped      int                       `json:"dropped"`
	Unclassified int                       `json:"unclassified"`
	Counts       map[domain.EntityType]int `json:"counts"`
	PayloadHash  string                    `json:"payload_hash"`
	LoadedAt     time.Time                 `json:"loaded_at"`
}

// TableReport is an entity table with the collection's monthly totals.
type TableReport struct {
	EntityType    domain.EntityType     `json:"entity_type"`
	Rows          []domain.EntityRow    `json:"rows"`
	MonthlyTotals []domain.MonthlyTotal `json:"monthly_totals"`
	GrandTotal    float64               `json:"grand_total"`
}

type ReportService struct {
	loader Loader
	cache  cache.ReportCache
	cfg    config.ReportConfig
	now    func() time.Time

	group singleflight.Group

	mu   sync.RWMutex
	last *Status
}

type Option func(*ReportService)

func WithClock(now func() time.Time) Option {
	return func(s *ReportService) { s.now = now }
}

func NewReportService(loader Loader, cacheImpl cache.ReportCache, cfg config.ReportConfig, opts ...Option) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	if cfg.PreviewSize <= 0 {
		cfg.PreviewSize = report.DefaultPreviewSize
	}
	if cfg.PeriodLimit <= 0 {
		cfg.PeriodLimit = report.DefaultPeriodLimit
	}
	if cfg.InitialStock <= 0 {
		cfg.InitialStock = report.DefaultInitialStock
	}

	s := &ReportService{loader: loader, cache: cacheImpl, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the export and runs the pipeline. Concurrent callers share one run;
// every call after it completes starts a fresh one.
func (s *ReportService) Load(ctx context.Context) (*Snapshot, error) {
	ch := s.group.DoChan("load", func() (interface{}, error) {
		res := s.loader.Load(context.WithoutCancel(ctx))
		ds, stats := pipeline.Run(res.Rows)
		snap := &Snapshot{Result: res, Dataset: ds, Stats: stats}
		s.record(context.WithoutCancel(ctx), snap)
		return snap, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Snapshot), nil
	}
}

// record stores the load's status. When the payload differs from the previous
// load, every cached report is dropped.
func (s *ReportService) record(ctx context.Context, snap *Snapshot) {
	st := &Status{
		RunID:        snap.Result.RunID,
		Source:       snap.Result.Source,
		Status:       snap.Result.Status,
		Fallback:     snap.Result.Fallback(),
		Reason:       snap.Result.Reason(),
		Rows:         snap.Stats.Rows,
		Canonical:    snap.Stats.Canonical,
		Dropped:      snap.Stats.Dropped,
		Unclassified: snap.Stats.Unclassified,
		Counts:       snap.Dataset.Counts(),
		PayloadHash:  snap.Result.PayloadHash,
		LoadedAt:     snap.Result.FetchedAt,
	}

	s.mu.Lock()
	prev := s.last
	s.last = st
	s.mu.Unlock()

	if prev != nil && prev.PayloadHash != st.PayloadHash {
		if err := s.cache.InvalidateAll(ctx); err != nil {
			log.Warn().Err(err).Str("run_id", st.RunID).Msg("report service: cache invalidation failed")
		} else {
			log.Debug().Str("run_id", st.RunID).Msg("report service: payload changed, cache invalidated")
		}
	}

	log.Info().
		Str("run_id", st.RunID).
		Str("source", st.Source).
		Str("status", string(st.Status)).
		Int("rows", st.Rows).
		Int("canonical", st.Canonical).
		Msg("report service: dataset loaded")
}

// LastStatus returns the outcome of the latest load, if any.
func (s *ReportService) LastStatus() (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Status{}, false
	}
	return *s.last, true
}

// Status loads the export and returns the resulting status.
func (s *ReportService) Status(ctx context.Context) (Status, error) {
	if _, err := s.Load(ctx); err != nil {
		return Status{}, err
	}
	st, _ := s.LastStatus()
	return st, nil
}

func (s *ReportService) Group(ctx context.Context, t domain.EntityType) (domain.GroupedCollection, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Dataset.Collection(t), nil
}

// Overview returns a preview of every entity type.
func (s *ReportService) Overview(ctx context.Context) ([]domain.Preview, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	key := cache.Key("overview", snap.Result.PayloadHash, itoa(s.cfg.PreviewSize))
	return cached(ctx, s, key, func() ([]domain.Preview, error) {
		out := make([]domain.Preview, 0, len(domain.EntityTypes()))
		for _, t := range domain.EntityTypes() {
			out = append(out, report.BuildPreview(t, snap.Dataset.Collection(t), s.cfg.PreviewSize))
		}
		return out, nil
	})
}

func (s *ReportService) Table(ctx context.Context, t domain.EntityType, opts report.TableOptions) (TableReport, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return TableReport{}, err
	}

	key := cache.Key("table", snap.Result.PayloadHash, string(t), string(opts.Field), string(opts.Direction))
	return cached(ctx, s, key, func() (TableReport, error) {
		c := snap.Dataset.Collection(t)
		return TableReport{
			EntityType:    t,
			Rows:          report.Table(c, opts),
			MonthlyTotals: report.MonthlyTotals(c, ""),
			GrandTotal:    c.TotalUnits(),
		}, nil
	})
}

func (s *ReportService) Monthly(ctx context.Context, t domain.EntityType, name string) ([]domain.MonthlyTotal, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return report.MonthlyTotals(snap.Dataset.Collection(t), name), nil
}

// Expiry categorizes the product collection by SKT relative to today.
func (s *ReportService) Expiry(ctx context.Context) (domain.ExpiryReport, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return domain.ExpiryReport{}, err
	}

	now := s.now()
	key := cache.Key("expiry", snap.Result.PayloadHash, day(now))
	return cached(ctx, s, key, func() (domain.ExpiryReport, error) {
		return report.CategorizeByExpiry(snap.Dataset.Collection(domain.EntityProduct), now), nil
	})
}

func (s *ReportService) PeriodSales(ctx context.Context, p report.Period, limit int) ([]domain.PeriodEntry, error) {
	if _, err := report.ParsePeriod(string(p)); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.cfg.PeriodLimit
	}
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := cache.Key("period_sales", snap.Result.PayloadHash, day(now), string(p), itoa(limit))
	return cached(ctx, s, key, func() ([]domain.PeriodEntry, error) {
		return report.PeriodSales(snap.Dataset.Collection(domain.EntityProduct), p, now, limit)
	})
}

func (s *ReportService) StockLevels(ctx context.Context, p report.Period) ([]domain.StockLevel, error) {
	if _, err := report.ParsePeriod(string(p)); err != nil {
		return nil, err
	}
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := cache.Key("stock_levels", snap.Result.PayloadHash, day(now), string(p), ftoa(s.cfg.InitialStock))
	return cached(ctx, s, key, func() ([]domain.StockLevel, error) {
		return report.StockLevels(snap.Dataset.Collection(domain.EntityProduct), p, now, s.cfg.InitialStock)
	})
}
