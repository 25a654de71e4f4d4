package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-backend/internal/weather"
)

// ProbeStatus is the outcome of the most recent upstream probe.
type ProbeStatus struct {
	Provider  string    `json:"provider"`
	Healthy   bool      `json:"healthy"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

// Scheduler periodically checks that the upstream provider answers for a fixed location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	provider  weather.Provider
	request   weather.Request
	interval  time.Duration
	timeout   time.Duration

	mu     sync.RWMutex
	status ProbeStatus
}

// New creates a new Scheduler. The probe uses only the daily selectors of params.
func New(provider weather.Provider, params weather.Params, lat, lon float64, interval, timeout time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		provider:  provider,
		request: weather.Request{
			Latitude:  lat,
			Longitude: lon,
			Daily:     params.Daily,
			Timezone:  params.Timezone,
		},
		interval: interval,
		timeout:  timeout,
		status:   ProbeStatus{Provider: provider.Name()},
	}
}

// Start schedules the probe job and starts the underlying scheduler.
// A non-positive interval leaves the probe disabled.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: upstream probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("scheduler: upstream probe started", "interval", s.interval)
	return nil
}

// RunOnce probes the upstream and records the result.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	status := ProbeStatus{
		Provider:  s.provider.Name(),
		CheckedAt: time.Now().UTC(),
		Healthy:   true,
	}
	if _, err := s.provider.Fetch(ctx, s.request); err != nil {
		status.Healthy = false
		status.Error = err.Error()
		slog.Warn("scheduler: upstream probe failed", "provider", status.Provider, "err", err)
	}

	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Status returns the last recorded probe result.
func (s *Scheduler) Status() ProbeStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
