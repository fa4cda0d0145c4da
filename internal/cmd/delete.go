package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"rssmerge/adapter/postgres"
)

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "remove a registered source",
		Flags: []cli.Flag{urlFlag("feed URL to remove")},
		Action: func(c *cli.Context) error {
			feedURL := strings.TrimSpace(c.String("url"))
			return withRepo(c, func(ctx context.Context, repo *postgres.Repository) error {
				err := repo.DeleteSource(ctx, feedURL)
				switch {
				case errors.Is(err, postgres.ErrSourceNotFound):
					return fmt.Errorf("source %q not found", feedURL)
				case err != nil:
					return fmt.Errorf("could not delete source %q: %w", feedURL, err)
				}
				fmt.Printf("Source %s deleted successfully\n", feedURL)
				return nil
			})
		},
	}
}
