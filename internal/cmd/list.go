package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"rssmerge/adapter/postgres"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list registered sources",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "num", Usage: "limit number of sources (0 = all)"},
		},
		Action: func(c *cli.Context) error {
			return withRepo(c, func(ctx context.Context, repo *postgres.Repository) error {
				sources, err := repo.ListSources(ctx, c.Int("num"))
				if err != nil {
					return fmt.Errorf("could not list sources: %w", err)
				}
				if len(sources) == 0 {
					fmt.Println("No sources registered")
					return nil
				}
				fmt.Print("Registered sources\n\n")
				for i, s := range sources {
					fmt.Printf("%d. %s\n   Added: %s\n\n", i+1, s.URL, s.CreatedAt.Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	}
}
