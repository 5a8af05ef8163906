package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	applog "dealerlot/internal/log"
)

// Refresher reloads the catalog snapshot on a cron schedule so listing
// requests rarely wait for the database.
type Refresher struct {
	cron    *cron.Cron
	catalog *CatalogService
}

func NewRefresher(catalog *CatalogService) *Refresher {
	return &Refresher{cron: cron.New(cron.WithLocation(time.UTC)), catalog: catalog}
}

// Start registers the job under spec (e.g. "@every 5m") and starts the
// scheduler. A bad spec is returned and nothing is started.
func (r *Refresher) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	applog.Event("catalog.refresher.start", nil, map[string]any{"schedule": spec})
	return nil
}

// Stop waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	n, err := r.catalog.Refresh(ctx)
	applog.Event("catalog.refresh", err, map[string]any{"count": n})
}
