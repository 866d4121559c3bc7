// Package postgres opens the read and write connection pools.
package postgres

//nolint:revive
import (
	"bistro/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 10
	connMaxLifetime = 30 * time.Minute
)

// Connection holds both pools. Reads may be served by a replica; anything that must observe
// its own writes uses Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  connect("read", pg, pg.Read),
		Write: connect("write", pg, pg.Write),
	}
}

// connect retries until the node answers or the attempts run out, which is fatal.
func connect(role string, pg config.PostgresConfig, node config.PostgresNode) *sqlx.DB {
	logger := log.With().
		Str("role", role).
		Str("host", node.Host).
		Str("port", node.Port).
		Str("database", pg.Database(node)).
		Logger()

	attempts := max(pg.MaxRetry, 1)
	wait := time.Duration(pg.RetryWaitTime) * time.Second

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := sqlx.Connect("postgres", pg.DSN(node, nil))
		if err == nil {
			db.SetMaxOpenConns(maxOpenConns)
			db.SetMaxIdleConns(maxIdleConns)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("Connected to database")

			return db
		}

		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Int("of", attempts).Msg("Database not reachable")

		if attempt < attempts {
			time.Sleep(wait)
		}
	}

	logger.Fatal().Err(lastErr).Msg("Giving up on database")

	return nil
}
