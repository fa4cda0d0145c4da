package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"

	"rssmerge/adapter/postgres"
	"rssmerge/domain"
	"rssmerge/internal/config"
	"rssmerge/internal/db"
	"rssmerge/internal/helper"
	"rssmerge/internal/logger"
)

// LoadSources reads one source URL per line. Blank lines and lines
// starting with # are skipped, invalid URLs are logged and skipped.
func LoadSources(path string) ([]domain.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseSources(f)
}

func parseSources(r io.Reader) ([]domain.Source, error) {
	var out []domain.Source
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := helper.ValidateSourceURL(text); err != nil {
			logger.L.Warnw("skipping source", "line", line, "error", err)
			continue
		}
		out = append(out, domain.Source(text))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}
	return lo.Uniq(out), nil
}

// registeredSources returns the URLs stored in Postgres.
func registeredSources(ctx context.Context, cfg config.Config) ([]domain.Source, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	repo := postgres.New(database)
	if err := repo.Ensure(ctx); err != nil {
		return nil, fmt.Errorf("db ensure failed: %w", err)
	}
	regs, err := repo.ListSources(ctx, 0)
	if err != nil {
		return nil, err
	}
	return lo.Map(regs, func(r domain.RegisteredSource, _ int) domain.Source {
		return domain.Source(r.URL)
	}), nil
}
