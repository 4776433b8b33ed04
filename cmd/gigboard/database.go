package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

// Ping budget for a cold Postgres instance, e.g. a compose stack where
// the database container is still coming up when the API starts.
const (
	dbPingTimeout    = 5 * time.Second
	dbWaitBudget     = 30 * time.Second
	dbRetryBackoff   = 500 * time.Millisecond
	dbBackoffCeiling = 5 * time.Second
)

// openDatabase opens the pgx connection and pings with backoff until
// the instance answers or the wait budget runs out.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	deadline := time.Now().Add(dbWaitBudget)
	backoff := dbRetryBackoff

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		err = db.PingContext(pingCtx)
		cancel()

		if err == nil {
			if attempt > 1 {
				log.Info().Int("attempt", attempt).Msg("database reachable")
			}
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			_ = db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}

		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", backoff).
			Msg("database not ready")

		time.Sleep(backoff)
		backoff *= 2
		if backoff > dbBackoffCeiling {
			backoff = dbBackoffCeiling
		}
	}
}
