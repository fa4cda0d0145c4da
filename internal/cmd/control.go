package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"rssmerge/cli/control"
)

func setIntervalCmd() *cli.Command {
	return &cli.Command{
		Name:  "set-interval",
		Usage: "change the refresh interval of the running server",
		Flags: []cli.Flag{
			&cli.DurationFlag{Name: "duration", Usage: "refresh interval (e.g. 2m)", Required: true},
		},
		Action: func(c *cli.Context) error {
			d := c.Duration("duration")
			if d <= 0 {
				return fmt.Errorf("duration must be positive, got %s", d)
			}
			cfg, err := setup(c)
			if err != nil {
				return err
			}
			old, err := control.NewClient(cfg.ControlAddr).SetInterval(d)
			if err != nil {
				return fmt.Errorf("could not set interval: %w", err)
			}
			if old == d {
				fmt.Printf("Interval is already set to %s (no change)\n", d)
				return nil
			}
			fmt.Printf("Refresh interval changed from %s to %s\n", old, d)
			return nil
		},
	}
}

func statusCmd() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show the state of every source of the running server",
		Action: func(c *cli.Context) error {
			cfg, err := setup(c)
			if err != nil {
				return err
			}
			st, err := control.NewClient(cfg.ControlAddr).Status()
			if err != nil {
				return fmt.Errorf("could not get status: %w", err)
			}
			fmt.Printf("Interval: %s\n\n", st.Interval)
			for _, s := range st.Sources {
				if s.OK {
					fmt.Printf("ok      %s (%d items)\n", s.Source, s.Items)
					continue
				}
				fmt.Printf("failing %s: %s\n", s.Source, s.Reason)
			}
			return nil
		},
	}
}
