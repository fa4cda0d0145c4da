package cmd

import (
	"github.com/urfave/cli/v2"

	"rssmerge/internal/config"
	"rssmerge/internal/logger"
)

func App() *cli.App {
	return &cli.App{
		Name:  "rssmerge",
		Usage: "merge RSS feeds into one date-ordered page",
		Description: `rssmerge polls a list of RSS sources, merges paginated sources page by
page and serves the combined items newest first.

Settings come from an optional YAML file (--config) and are overridden
by environment variables, e.g.:

  RSSMERGE_INTERVAL=10m
  RSSMERGE_LISTEN_ADDR=:8080
  POSTGRES_HOST=db`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{"RSSMERGE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			addCmd(),
			listCmd(),
			deleteCmd(),
			setIntervalCmd(),
			statusCmd(),
		},
		Action: func(ctx *cli.Context) error {
			return cli.ShowAppHelp(ctx)
		},
	}
}

// setup loads the configuration and initializes the global logger.
func setup(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return config.Config{}, err
	}
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
