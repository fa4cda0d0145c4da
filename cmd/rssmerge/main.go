package main

import (
	"os"

	"rssmerge/internal/cmd"
	"rssmerge/internal/logger"
)

func main() {
	if err := cmd.App().Run(os.Args); err != nil {
		logger.L.Errorw("command failed", "error", err)
		logger.Sync()
		os.Exit(1)
	}
}
