package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"viewmd/internal"
	pkgconfig "viewmd/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

// buildConfig merges defaults, the optional config file, flags, and the
// positional port, then validates the result. Later sources win.
func buildConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	if path := cmd.String("config"); path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if root := cmd.String("root"); root != "" {
		cfg.Root.Path = root
	}
	if cmd.Bool("no-reload") {
		cfg.Reload.Enabled = false
	}

	if cmd.Args().Len() > 1 {
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(cmd.Args().Slice()[1:], " "))
	}
	if arg := cmd.Args().First(); arg != "" {
		port, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", arg)
		}
		cfg.App.HTTP.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "viewmd",
		Usage:     "View Markdown files in your browser",
		Version:   internal.Version,
		ArgsUsage: "[port]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Sources: cli.EnvVars("VIEWMD_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Directory to serve",
			},
			&cli.BoolFlag{
				Name:  "no-reload",
				Usage: "Disable live reload",
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
