package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v3"
)

// configCommand inspects the effective configuration
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration operations",
		Commands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Print the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}

// ConfigShow prints the merged configuration the process is running with.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("json") {
		return r.writeJSON(r.config, true)
	}

	encoder := toml.NewEncoder(r.output)
	return encoder.Encode(r.config)
}
