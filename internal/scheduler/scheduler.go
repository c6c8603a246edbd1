package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type PredictionRefresher interface {
	RefreshAll() (int, error)
}

// Service rebuilds stored prediction snapshots on a cron schedule so that
// users whose refresh failed during a mutation converge eventually.
type Service struct {
	Predictions PredictionRefresher
	Schedule    string
	Location    *time.Location
}

// Start registers the refresh job and runs the cron until ctx is done. The
// returned channel closes once the cron has stopped and any running refresh
// has returned.
func (s *Service) Start(ctx context.Context) (*cron.Cron, <-chan struct{}, error) {
	location := s.Location
	if location == nil {
		location = time.UTC
	}

	c := cron.New(cron.WithLocation(location))
	if _, err := c.AddFunc(s.Schedule, s.RunRefresh); err != nil {
		return nil, nil, fmt.Errorf("schedule prediction refresh %q: %w", s.Schedule, err)
	}
	c.Start()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, stopped, nil
}

func (s *Service) RunRefresh() {
	started := time.Now()
	refreshed, err := s.Predictions.RefreshAll()
	if err != nil {
		log.Printf("prediction refresh: %d users refreshed, errors: %v", refreshed, err)
		return
	}
	log.Printf("prediction refresh: %d users refreshed in %s", refreshed, time.Since(started).Round(time.Millisecond))
}
