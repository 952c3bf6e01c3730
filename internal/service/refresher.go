package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const refreshTimeout = 2 * time.Minute

// Refresher reloads the export on a cron schedule so the status endpoint and the
// report cache stay warm between requests.
type Refresher struct {
	svc  *ReportService
	cron *cron.Cron
}

// NewRefresher schedules reloads. An empty schedule yields a nil refresher.
func NewRefresher(svc *ReportService, schedule, timeZone string) (*Refresher, error) {
	if schedule == "" {
		return nil, nil
	}

	loc := time.Local
	if timeZone != "" {
		var err error
		loc, err = time.LoadLocation(timeZone)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh timezone %q: %w", timeZone, err)
		}
	}

	r := &Refresher{svc: svc, cron: cron.New(cron.WithLocation(loc))}
	if _, err := r.cron.AddFunc(schedule, r.Run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Refresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// Run performs one reload and warms the overview.
func (r *Refresher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	start := time.Now()
	if _, err := r.svc.Overview(ctx); err != nil {
		log.Error().Err(err).Msg("refresher: reload failed")
		return
	}

	st, _ := r.svc.LastStatus()
	evt := log.Info()
	if st.Fallback {
		evt = log.Warn().Str("reason", st.Reason)
	}
	evt.Str("run_id", st.RunID).
		Str("status", string(st.Status)).
		Dur("took", time.Since(start)).
		Msg("refresher: reload completed")
}
