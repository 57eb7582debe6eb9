package holiday

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/tartampluch/go-schedule3d/internal/config"
)

// Reloader is a holiday source that can be refreshed in place.
type Reloader interface {
	Reload(ctx context.Context) error
	Location() string
}

// Refresher reloads holiday feeds on a cron schedule.
type Refresher struct {
	cron    *cron.Cron
	sources []Reloader
}

// NewRefresher validates spec (standard five-field or @descriptor syntax) and
// schedules a reload of every source.
func NewRefresher(spec string, sources ...Reloader) (*Refresher, error) {
	r := &Refresher{cron: cron.New(), sources: sources}
	if _, err := r.cron.AddFunc(spec, func() { r.ReloadAll(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%s: %q: %w", config.ErrSchedule, spec, err)
	}
	return r, nil
}

// ReloadAll reloads every source and returns how many succeeded. A failing
// source keeps its previous data.
func (r *Refresher) ReloadAll(ctx context.Context) int {
	ok := 0
	for _, src := range r.sources {
		if err := src.Reload(ctx); err != nil {
			slog.Warn(config.MsgFeedRefreshErr,
				config.LogKeyComponent, config.CompHoliday,
				config.LogKeyPath, src.Location(),
				config.LogKeyError, err)
			continue
		}
		ok++
	}
	slog.Info(config.MsgFeedRefresh,
		config.LogKeyComponent, config.CompHoliday,
		config.LogKeyCount, ok)
	return ok
}

// Run starts the schedule and blocks until ctx is cancelled, then waits for a
// running reload to finish.
func (r *Refresher) Run(ctx context.Context) {
	r.cron.Start()
	<-ctx.Done()
	<-r.cron.Stop().Done()
}
