package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

type refresherStub struct {
	calls     int
	refreshed int
	err       error
}

func (stub *refresherStub) RefreshAll() (int, error) {
	stub.calls++
	return stub.refreshed, stub.err
}

func TestRunRefreshCallsRefreshAll(t *testing.T) {
	stub := &refresherStub{refreshed: 2}
	service := &Service{Predictions: stub, Schedule: "@daily"}

	service.RunRefresh()
	if stub.calls != 1 {
		t.Fatalf("expected one RefreshAll call, got %d", stub.calls)
	}
}

func TestRunRefreshToleratesErrors(t *testing.T) {
	stub := &refresherStub{refreshed: 1, err: errors.New("user \"a\": store predictions: disk full")}
	service := &Service{Predictions: stub, Schedule: "@daily"}

	service.RunRefresh()
	if stub.calls != 1 {
		t.Fatalf("expected one RefreshAll call, got %d", stub.calls)
	}
}

func TestStartRegistersRefreshJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	service := &Service{Predictions: &refresherStub{}, Schedule: "30 3 * * *"}
	c, _, err := service.Start(ctx)
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}
	if entries := c.Entries(); len(entries) != 1 {
		t.Fatalf("expected one scheduled job, got %d", len(entries))
	}
	if c.Location().String() != "UTC" {
		t.Fatalf("expected UTC cron location, got %s", c.Location())
	}
}

func TestStartRejectsInvalidSchedule(t *testing.T) {
	service := &Service{Predictions: &refresherStub{}, Schedule: "whenever"}
	if _, _, err := service.Start(context.Background()); err == nil {
		t.Fatal("expected invalid schedule error")
	}
}

type blockingRefresher struct {
	started chan struct{}
	release chan struct{}
}

func (stub *blockingRefresher) RefreshAll() (int, error) {
	select {
	case stub.started <- struct{}{}:
	default:
	}
	<-stub.release
	return 0, nil
}

func TestStartStoppedWaitsForRunningRefresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &blockingRefresher{started: make(chan struct{}, 1), release: make(chan struct{})}
	service := &Service{Predictions: stub, Schedule: "@every 1s"}
	_, stopped, err := service.Start(ctx)
	if err != nil {
		t.Fatalf("Start() unexpected error: %v", err)
	}

	select {
	case <-stub.started:
	case <-time.After(5 * time.Second):
		t.Fatal("refresh job did not run")
	}

	cancel()
	select {
	case <-stopped:
		t.Fatal("stopped closed while a refresh was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(stub.release)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stopped did not close after the refresh returned")
	}
}
