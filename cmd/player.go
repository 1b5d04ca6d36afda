package main

import (
	"context"

	"github.com/desertthunder/qfill/internal/formatter"
	"github.com/desertthunder/qfill/internal/ui"
	"github.com/urfave/cli/v3"
)

// ShowStatus prints the daemon's playback snapshot.
func (r *Runner) ShowStatus(ctx context.Context, cmd *cli.Command) error {
	status, err := r.client.Status(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"state":        status.State.String(),
			"current_uri":  status.CurrentURI,
			"elapsed":      status.Elapsed,
			"queue_length": status.QueueLength,
		}, true)
	}

	return r.writePlain("%s", ui.RenderStatus(status))
}

// ShowQueue prints or exports the playback queue.
func (r *Runner) ShowQueue(ctx context.Context, cmd *cli.Command) error {
	entries, err := r.client.Queue(ctx)
	if err != nil {
		return err
	}

	if format := cmd.String("export"); format != "" {
		path, err := formatter.WriteQueueExport(entries, format, cmd.String("output"))
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", ui.Success("Queue exported to "+path))
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	status, err := r.client.Status(ctx)
	if err != nil {
		return err
	}

	return r.writePlain("%s", ui.RenderQueue(entries, status.CurrentID))
}

// PlayerPlay starts or resumes playback.
func (r *Runner) PlayerPlay(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Play(ctx); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Success("Playback started"))
}

// PlayerPause pauses playback.
func (r *Runner) PlayerPause(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Pause(ctx); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Success("Playback paused"))
}

// PlayerNext skips to the next queued track.
func (r *Runner) PlayerNext(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.Next(ctx); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Success("Skipped to next track"))
}

// PlayerClear empties the playback queue.
func (r *Runner) PlayerClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.client.ClearQueue(ctx); err != nil {
		return err
	}
	return r.writePlain("%s\n", ui.Success("Queue cleared"))
}
