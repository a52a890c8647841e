// Package telemetry exports simulation metrics to Prometheus.
//
// A nil *Recorder is valid and records nothing, so callers can leave metrics
// switched off without branching.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "doom"

// TickStats is the scene summary sampled after each tick.
type TickStats struct {
	LiveEnemies int
	Kills       int // total for the current run
	PlayerDead  bool
}

// Recorder owns a private registry so several recorders (tests, SSH
// sessions) never collide on global registration.
type Recorder struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	liveEnemies  prometheus.Gauge
	kills        prometheus.Counter
	deaths       prometheus.Counter
	sessions     prometheus.Gauge
}

// NewRecorder creates and registers the collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick.",
			Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		liveEnemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_enemies",
			Help:      "Enemies currently in the scene.",
		}),
		kills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kills_total",
			Help:      "Enemies killed.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_deaths_total",
			Help:      "Times the player died.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Active play sessions.",
		}),
	}
	r.registry.MustRegister(r.tickDuration, r.liveEnemies, r.kills, r.deaths, r.sessions)
	return r
}

// Session is one game's view of a shared Recorder. It keeps the per-run
// baselines and only pushes deltas, so any number of sessions can feed the
// same collectors. A nil *Session records nothing.
type Session struct {
	r *Recorder

	mu        sync.Mutex
	prevKills int
	wasDead   bool
	live      int
	closed    bool
}

// Session opens a handle for one game. Close it when the game goes away so
// its enemies leave the live gauge.
func (r *Recorder) Session() *Session {
	if r == nil {
		return nil
	}
	return &Session{r: r}
}

// ObserveTick records one tick. Kills are reported as a running total and
// converted to counter increments; a restart (total going down) resets the
// baseline.
func (s *Session) ObserveTick(d time.Duration, st TickStats) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.r.tickDuration.Observe(d.Seconds())

	s.r.liveEnemies.Add(float64(st.LiveEnemies - s.live))
	s.live = st.LiveEnemies

	if st.Kills < s.prevKills {
		s.prevKills = 0
	}
	if delta := st.Kills - s.prevKills; delta > 0 {
		s.r.kills.Add(float64(delta))
	}
	s.prevKills = st.Kills

	if st.PlayerDead && !s.wasDead {
		s.r.deaths.Inc()
	}
	s.wasDead = st.PlayerDead
}

// Close withdraws the session's enemies from the live gauge. Later ticks are
// ignored.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.r.liveEnemies.Sub(float64(s.live))
	s.live = 0
	s.closed = true
}

// SessionStarted increments the active sessions gauge.
func (r *Recorder) SessionStarted() {
	if r == nil {
		return
	}
	r.sessions.Inc()
}

// SessionEnded decrements the active sessions gauge.
func (r *Recorder) SessionEnded() {
	if r == nil {
		return
	}
	r.sessions.Dec()
}

// Registry exposes the private registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
