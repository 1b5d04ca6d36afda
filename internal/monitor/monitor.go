package monitor

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/mpd"
	"github.com/desertthunder/qfill/internal/queue"
	"github.com/desertthunder/qfill/internal/shared"
	"github.com/desertthunder/qfill/internal/strategy"
)

// History keeps a few batches worth of dedup memory.
const historyBatchMultiple = 4

// State identifies where in the tick pipeline the monitor currently is.
type State int32

const (
	Idle State = iota
	Evaluating
	Selecting
	Enqueuing
	Backoff
)

func (s State) String() string {
	switch s {
	case Evaluating:
		return "evaluating"
	case Selecting:
		return "selecting"
	case Enqueuing:
		return "enqueuing"
	case Backoff:
		return "backoff"
	default:
		return "idle"
	}
}

// Recorder persists tick outcomes for the UI's refill history.
type Recorder interface {
	Record(record models.RefillRecord) error
}

// Monitor is the auto-fill state machine.
type Monitor struct {
	client   mpd.Controller
	settings *Settings
	history  *queue.RecentHistory
	recorder Recorder
	logger   *log.Logger
	rng      *rand.Rand
	interval time.Duration

	state  atomic.Int32
	busy   atomic.Bool
	events chan Notification
}

// Opts contains configuration options for creating a Monitor.
type Opts struct {
	Client   mpd.Controller
	Settings *Settings
	Recorder Recorder // Optional; nil disables persistence
	Logger   *log.Logger
	Interval time.Duration
	Rand     *rand.Rand // Optional; seeded from the clock when nil
}

// New creates a Monitor. The dedup history capacity tracks the configured
// batch size so memory stays proportional to what one tick can add.
func New(opts Opts) *Monitor {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Second
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	capacity := opts.Settings.Snapshot().BatchSize * historyBatchMultiple

	return &Monitor{
		client:   opts.Client,
		settings: opts.Settings,
		history:  queue.NewRecentHistory(capacity),
		recorder: opts.Recorder,
		logger:   shared.WithLogger(opts.Logger, "component", "monitor"),
		rng:      opts.Rand,
		interval: opts.Interval,
		events:   make(chan Notification, 16),
	}
}

// Notifications returns the best-effort event stream consumed by the UI.
func (m *Monitor) Notifications() <-chan Notification {
	return m.events
}

// Settings returns the live settings store shared with the web layer.
func (m *Monitor) Settings() *Settings {
	return m.settings
}

// State reports the monitor's current position in the tick pipeline.
func (m *Monitor) State() State {
	return State(m.state.Load())
}

// History exposes the dedup window, read-only use only.
func (m *Monitor) History() *queue.RecentHistory {
	return m.history
}

// Run drives the tick loop until ctx is cancelled. Daemon failures never
// terminate the loop; they surface as notifications and the next interval
// tries again.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("auto-fill monitor started", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("auto-fill monitor stopped")
			return
		case <-ticker.C:
			m.Tick(ctx)
		}
	}
}

// Tick runs one evaluate-select-enqueue pass with normal gating (enabled
// flag and threshold). Exported so tests and the CLI can drive ticks without
// the wall clock.
func (m *Monitor) Tick(ctx context.Context) {
	m.tick(ctx, false)
}

// FillNow runs one pass ignoring the enabled flag and threshold, for the
// CLI's manual fill command.
func (m *Monitor) FillNow(ctx context.Context) {
	m.tick(ctx, true)
}

func (m *Monitor) tick(ctx context.Context, force bool) {
	// A tick still in flight wins; this one is dropped, not queued.
	if !m.busy.CompareAndSwap(false, true) {
		m.logger.Debug("tick overlapped, dropping")
		return
	}
	defer m.busy.Store(false)
	defer m.state.Store(int32(Idle))

	// One snapshot per tick; a config write mid-tick affects the next tick.
	cfg := m.settings.Snapshot()
	if !cfg.Enabled && !force {
		return
	}

	m.state.Store(int32(Evaluating))

	status, err := m.client.Status(ctx)
	if err != nil {
		m.fail(cfg, err)
		return
	}

	entries, err := m.client.Queue(ctx)
	if err != nil {
		m.fail(cfg, err)
		return
	}

	if !force && status.QueueLength > cfg.Threshold {
		return
	}

	m.state.Store(int32(Selecting))
	m.notify(startedNotification(cfg.Mode))

	exclude := queue.Exclusions(entries, m.history)
	strat := strategy.ForMode(cfg, currentArtist(status, entries), m.rng)

	batch, err := strat.Select(ctx, m.client, exclude, cfg.BatchSize)
	if err != nil {
		m.fail(cfg, err)
		return
	}

	if len(batch) == 0 {
		reason := skipReason(cfg, status, entries)
		m.logger.Info("refill skipped", "mode", cfg.Mode, "reason", reason)
		m.notify(skippedNotification(cfg.Mode, reason))
		m.record(models.NewRefillRecord(cfg.Mode, models.RefillOutcomeSkipped, cfg.BatchSize, 0, reason, nil))
		return
	}

	m.state.Store(int32(Enqueuing))

	uris := make([]string, len(batch))
	for i, track := range batch {
		uris[i] = track.URI
	}

	added, err := m.client.Enqueue(ctx, uris)
	if added > 0 {
		// The daemon's count is authoritative; partial success stands.
		confirmed := uris[:added]
		m.history.Add(confirmed...)
		m.logger.Info("refill completed", "mode", cfg.Mode, "added", added, "requested", len(uris))
		m.notify(completedNotification(cfg.Mode, added))
		m.record(models.NewRefillRecord(cfg.Mode, models.RefillOutcomeCompleted, len(uris), added, "", confirmed))

		if err != nil {
			m.logger.Warn("enqueue ended early", "added", added, "requested", len(uris), "err", err)
		}
		return
	}

	if err != nil {
		m.fail(cfg, err)
		return
	}

	m.notify(skippedNotification(cfg.Mode, "daemon_rejected"))
	m.record(models.NewRefillRecord(cfg.Mode, models.RefillOutcomeSkipped, len(uris), 0, "daemon_rejected", nil))
}

// fail transitions to Backoff: notify, record, leave all state untouched.
// The next interval resumes normal ticking.
func (m *Monitor) fail(cfg models.AutoFillConfig, err error) {
	m.state.Store(int32(Backoff))
	m.logger.Warn("tick aborted", "mode", cfg.Mode, "err", err)
	m.notify(errorNotification(cfg.Mode, err))
	m.record(models.NewRefillRecord(cfg.Mode, models.RefillOutcomeError, 0, 0, err.Error(), nil))
}

// notify sends without blocking; a full channel drops the event.
func (m *Monitor) notify(n Notification) {
	select {
	case m.events <- n:
	default:
	}
}

func (m *Monitor) record(record models.RefillRecord) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.Record(record); err != nil {
		m.logger.Warn("failed to persist refill record", "err", err)
	}
}

// currentArtist resolves the artist of the playing track from the queue
// snapshot, preferring the daemon-assigned queue id.
func currentArtist(status models.PlaybackStatus, entries []models.QueueEntry) string {
	for _, entry := range entries {
		if status.CurrentID >= 0 && entry.ID == status.CurrentID {
			return entry.Artist
		}
	}
	for _, entry := range entries {
		if status.CurrentURI != "" && entry.URI == status.CurrentURI {
			return entry.Artist
		}
	}
	return ""
}

// skipReason explains an empty batch for the notification surface.
func skipReason(cfg models.AutoFillConfig, status models.PlaybackStatus, entries []models.QueueEntry) string {
	if cfg.Mode == models.ModeArtist && cfg.SeedArtist == "" && currentArtist(status, entries) == "" {
		return "no_seed_artist"
	}
	if cfg.Mode == models.ModeGenre && len(cfg.Genres) == 0 {
		return "no_genres_configured"
	}
	return "no_candidates"
}
