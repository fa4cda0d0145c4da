package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"

	"rssmerge/internal/config"
	"rssmerge/internal/logger"
)

// maxConnectWait bounds the retries of the first ping.
const maxConnectWait = 30 * time.Second

// Open connects to Postgres and pings it, retrying with exponential
// backoff while the server comes up.
func Open(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	dbConn, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, err
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetMaxIdleConns(10)
	dbConn.SetConnMaxLifetime(30 * time.Minute)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = maxConnectWait

	ping := func() error { return dbConn.PingContext(ctx) }
	notify := func(err error, wait time.Duration) {
		logger.L.Warnw("postgres not ready", "host", cfg.PGHost, "retry_in", wait, "error", err)
	}
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("connect to postgres at %s:%d: %w", cfg.PGHost, cfg.PGPort, err)
	}
	return dbConn, nil
}
