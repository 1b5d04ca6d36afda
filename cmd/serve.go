package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/qfill/internal/formatter"
	"github.com/desertthunder/qfill/internal/monitor"
	"github.com/desertthunder/qfill/internal/repositories"
	"github.com/desertthunder/qfill/internal/server"
	"github.com/desertthunder/qfill/internal/shared"
	"github.com/desertthunder/qfill/internal/ui"
	"github.com/urfave/cli/v3"
)

// Serve runs the web remote together with the auto-fill monitor until
// interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.autofillConfig()
	if err != nil {
		return err
	}

	settings, err := monitor.NewSettings(cfg)
	if err != nil {
		return err
	}

	var (
		recorder *repositories.RefillLogRepository
		history  server.RefillHistory
	)
	if !cmd.Bool("no-persist") {
		db, dbErr := r.openDatabase()
		if dbErr != nil {
			r.logger.Warn("refill history disabled", "error", dbErr)
		} else {
			defer db.Close()
			repo := repositories.NewRefillLogRepository(db)
			recorder = repo
			history = repo
		}
	}

	m := monitor.New(monitor.Opts{
		Client:   r.client,
		Settings: settings,
		Recorder: recorderOrNil(recorder),
		Logger:   r.logger,
		Interval: r.config.AutoFill.Interval(),
	})

	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Server.Addr()
	}

	app := server.NewApp(addr, r.client, m, history, r.logger)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(runCtx)
}

// FillOnce runs a single forced refill pass and reports the outcome.
func (r *Runner) FillOnce(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.autofillConfig()
	if err != nil {
		return err
	}

	settings, err := monitor.NewSettings(cfg)
	if err != nil {
		return err
	}

	var recorder monitor.Recorder
	if db, dbErr := r.openDatabase(); dbErr == nil {
		defer db.Close()
		recorder = repositories.NewRefillLogRepository(db)
	} else {
		r.logger.Debug("running without refill history", "error", dbErr)
	}

	m := monitor.New(monitor.Opts{
		Client:   r.client,
		Settings: settings,
		Recorder: recorder,
		Logger:   r.logger,
	})

	m.FillNow(ctx)

	reported := false
	for {
		select {
		case n := <-m.Notifications():
			switch n.Kind {
			case monitor.RefillCompleted:
				r.writePlain("%s\n", ui.Success(fmt.Sprintf("Added %d tracks (%s mode)", n.Count, n.Mode)))
				reported = true
			case monitor.RefillSkipped:
				r.writePlain("%s\n", ui.Hint("Nothing added: "+n.Reason))
				reported = true
			case monitor.RefillError:
				return fmt.Errorf("refill failed: %s", n.Detail)
			}
		default:
			if !reported {
				r.writePlain("%s\n", ui.Hint("No refill performed"))
			}
			return nil
		}
	}
}

// ShowHistory prints persisted refill outcomes, newest first.
func (r *Runner) ShowHistory(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return fmt.Errorf("refill history unavailable, run setup first: %w", err)
	}
	defer db.Close()

	repo := repositories.NewRefillLogRepository(db)
	records, err := repo.Recent(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if format := cmd.String("export"); format != "" {
		if format != "csv" {
			return fmt.Errorf("unsupported export format: %s", format)
		}

		data, err := formatter.RefillsToCSV(records)
		if err != nil {
			return err
		}

		path := cmd.String("output")
		if path == "" {
			path = "refills.csv"
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		return r.writePlain("%s\n", ui.Success("History exported to "+path))
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	return r.writePlain("%s", ui.RenderRefills(records))
}

func (r *Runner) openDatabase() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// recorderOrNil avoids storing a typed nil in the monitor's interface field.
func recorderOrNil(repo *repositories.RefillLogRepository) monitor.Recorder {
	if repo == nil {
		return nil
	}
	return repo
}
