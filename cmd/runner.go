package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/qfill/internal/models"
	"github.com/desertthunder/qfill/internal/mpd"
	"github.com/desertthunder/qfill/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	client mpd.Controller
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Client mpd.Controller
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Client == nil {
		opts.Client = mpd.NewClient(opts.Config.MPD.Addr(), opts.Config.MPD.Password, opts.Config.MPD.Timeout())
	}

	return &Runner{
		config: opts.Config,
		client: opts.Client,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, statusCommand, queueCommand, playerCommand, fillCommand, historyCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// autofillConfig builds the monitor's initial settings from the TOML section.
func (r *Runner) autofillConfig() (models.AutoFillConfig, error) {
	section := r.config.AutoFill

	mode := models.ModeArtist
	if section.Mode != "" {
		parsed, err := models.ParseMode(section.Mode)
		if err != nil {
			return models.AutoFillConfig{}, err
		}
		mode = parsed
	}

	cfg := models.AutoFillConfig{
		Enabled:    section.Enabled,
		Mode:       mode,
		Threshold:  section.Threshold,
		BatchSize:  section.BatchSize,
		Genres:     section.Genres,
		SeedArtist: section.SeedArtist,
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 4
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 5
	}

	return cfg, cfg.Validate()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
