package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"rssmerge/adapter/postgres"
	"rssmerge/internal/db"
	"rssmerge/internal/helper"
)

func urlFlag(usage string) cli.Flag {
	return &cli.StringFlag{Name: "url", Usage: usage, Required: true}
}

// withRepo opens the database, ensures the schema and runs fn.
func withRepo(c *cli.Context, fn func(ctx context.Context, repo *postgres.Repository) error) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	ctx := c.Context
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	repo := postgres.New(database)
	if err := repo.Ensure(ctx); err != nil {
		return fmt.Errorf("db ensure failed: %w", err)
	}
	return fn(ctx, repo)
}

func addCmd() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "register a source in the database",
		Flags: []cli.Flag{urlFlag("feed URL")},
		Action: func(c *cli.Context) error {
			feedURL := strings.TrimSpace(c.String("url"))
			if err := helper.ValidateSourceURL(feedURL); err != nil {
				return err
			}
			return withRepo(c, func(ctx context.Context, repo *postgres.Repository) error {
				if err := repo.AddSource(ctx, feedURL); err != nil {
					if errors.Is(err, postgres.ErrSourceExists) {
						return fmt.Errorf("source %q already exists", feedURL)
					}
					return fmt.Errorf("could not add source: %w", err)
				}
				fmt.Printf("Source %s added successfully\n", feedURL)
				return nil
			})
		},
	}
}
