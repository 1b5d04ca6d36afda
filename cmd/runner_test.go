package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/shared"
	"github.com/urfave/cli/v3"
)

// fakeDaemon is a Controller double for command tests.
type fakeDaemon struct {
	status   models.PlaybackStatus
	queue    []models.QueueEntry
	library  []models.Track
	err      error
	actions  []string
	enqueued []string
}

func (d *fakeDaemon) Status(ctx context.Context) (models.PlaybackStatus, error) {
	return d.status, d.err
}

func (d *fakeDaemon) Queue(ctx context.Context) ([]models.QueueEntry, error) {
	return d.queue, d.err
}

func (d *fakeDaemon) SearchArtist(ctx context.Context, artist string) ([]models.Track, error) {
	return d.library, d.err
}

func (d *fakeDaemon) SearchGenre(ctx context.Context, genre string) ([]models.Track, error) {
	return d.library, d.err
}

func (d *fakeDaemon) Enqueue(ctx context.Context, uris []string) (int, error) {
	d.enqueued = append(d.enqueued, uris...)
	return len(uris), d.err
}

func (d *fakeDaemon) Play(ctx context.Context) error {
	d.actions = append(d.actions, "play")
	return d.err
}

func (d *fakeDaemon) Pause(ctx context.Context) error {
	d.actions = append(d.actions, "pause")
	return d.err
}

func (d *fakeDaemon) Next(ctx context.Context) error {
	d.actions = append(d.actions, "next")
	return d.err
}

func (d *fakeDaemon) ClearQueue(ctx context.Context) error {
	d.actions = append(d.actions, "clear")
	return d.err
}

func newTestRunner(daemon *fakeDaemon) (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer

	config := shared.DefaultConfig()
	config.Database.Path = ":memory:"

	runner := NewRunner(RunnerOpts{
		Config: config,
		Client: daemon,
		Output: &buf,
	})
	return runner, &buf
}

func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "qfill",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"qfill"}, args...))
}

func TestShowStatus(t *testing.T) {
	daemon := &fakeDaemon{
		status: models.PlaybackStatus{
			State:       models.StatePlaying,
			CurrentURI:  "albums/a.flac",
			Elapsed:     42,
			QueueLength: 3,
		},
	}
	runner, buf := newTestRunner(daemon)

	t.Run("plain output", func(t *testing.T) {
		buf.Reset()
		if err := runCommand(t, runner, "status"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "albums/a.flac") {
			t.Errorf("output missing current track:\n%s", buf.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		buf.Reset()
		if err := runCommand(t, runner, "status", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), `"state": "play"`) {
			t.Errorf("output missing state field:\n%s", buf.String())
		}
	})

	t.Run("daemon error propagates", func(t *testing.T) {
		failing := &fakeDaemon{err: shared.ErrConnection}
		runner, _ := newTestRunner(failing)
		if err := runCommand(t, runner, "status"); err == nil {
			t.Error("expected error when daemon is unreachable")
		}
	})
}

func TestShowQueue(t *testing.T) {
	daemon := &fakeDaemon{
		status: models.PlaybackStatus{State: models.StatePlaying, CurrentID: 2, QueueLength: 2},
		queue: []models.QueueEntry{
			{Track: models.Track{URI: "a.flac", Title: "One", Artist: "Queen"}, Pos: 0, ID: 1},
			{Track: models.Track{URI: "b.flac", Title: "Two", Artist: "Queen"}, Pos: 1, ID: 2},
		},
	}
	runner, buf := newTestRunner(daemon)

	if err := runCommand(t, runner, "queue"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Queen - One") || !strings.Contains(out, "Queen - Two") {
		t.Errorf("queue listing incomplete:\n%s", out)
	}
}

func TestPlayerCommands(t *testing.T) {
	daemon := &fakeDaemon{}
	runner, _ := newTestRunner(daemon)

	for _, action := range []string{"play", "pause", "next", "clear"} {
		if err := runCommand(t, runner, "player", action); err != nil {
			t.Fatalf("%s: unexpected error: %v", action, err)
		}
	}

	want := []string{"play", "pause", "next", "clear"}
	if len(daemon.actions) != len(want) {
		t.Fatalf("expected %v, got %v", want, daemon.actions)
	}
	for i, action := range want {
		if daemon.actions[i] != action {
			t.Errorf("action %d: expected %s, got %s", i, action, daemon.actions[i])
		}
	}
}

func TestFillOnce(t *testing.T) {
	daemon := &fakeDaemon{
		status:  models.PlaybackStatus{State: models.StatePlaying, CurrentID: 1, QueueLength: 1},
		queue:   []models.QueueEntry{{Track: models.Track{URI: "q/1", Artist: "Queen"}, Pos: 0, ID: 1}},
		library: []models.Track{{URI: "lib/1", Artist: "Queen"}, {URI: "lib/2", Artist: "Queen"}},
	}
	runner, buf := newTestRunner(daemon)

	if err := runCommand(t, runner, "fill"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(daemon.enqueued) == 0 {
		t.Error("forced fill added nothing")
	}
	if !strings.Contains(buf.String(), "Added") {
		t.Errorf("missing confirmation output:\n%s", buf.String())
	}
}

func TestShowHistoryExport(t *testing.T) {
	runner, buf := newTestRunner(&fakeDaemon{})
	dir := t.TempDir()

	t.Run("csv export writes a file", func(t *testing.T) {
		buf.Reset()
		path := filepath.Join(dir, "refills.csv")

		if err := runCommand(t, runner, "history", "--export", "csv", "--output", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("export file missing: %v", err)
		}
		if !strings.Contains(string(data), "Time,Mode,Outcome") {
			t.Errorf("export missing CSV header: %s", data)
		}
		if !strings.Contains(buf.String(), "exported") {
			t.Errorf("missing confirmation output:\n%s", buf.String())
		}
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		if err := runCommand(t, runner, "history", "--export", "xml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

func TestAutofillConfigDefaults(t *testing.T) {
	config := shared.DefaultConfig()
	config.AutoFill.Threshold = 0
	config.AutoFill.BatchSize = 0
	config.AutoFill.Mode = ""

	runner := NewRunner(RunnerOpts{Config: config, Client: &fakeDaemon{}})

	cfg, err := runner.autofillConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Threshold != 4 || cfg.BatchSize != 5 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Mode != models.ModeArtist {
		t.Errorf("expected artist mode default, got %s", cfg.Mode)
	}

	t.Run("bad mode rejected", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.AutoFill.Mode = "shuffle"

		runner := NewRunner(RunnerOpts{Config: config, Client: &fakeDaemon{}})
		if _, err := runner.autofillConfig(); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}
