package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// cached returns the cached value under key or computes and stores it. Cache
// failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *ReportService, key string, compute func() (T, error)) (T, error) {
	var out T
	if ok, err := s.cache.Get(ctx, key, &out); err == nil && ok {
		return out, nil
	} else if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report service: cache get failed")
	}

	out, err := compute()
	if err != nil {
		return out, err
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report service: cache set failed")
	}
	return out, nil
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
