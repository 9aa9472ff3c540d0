package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"

	"coating/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads and writes. Both point to the same pool when no read replica is configured.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	write := connect(cfg, "write", cfg.DB.Postgres.Write)

	if cfg.DB.Postgres.Read.Host == "" {
		log.Info().Msg("No read replica configured, reads use the write database")

		return &Connection{Read: write, Write: write}
	}

	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: write,
	}
}

// DSN builds the lib/pq URL for an endpoint. Extra values are appended as query parameters,
// which is how golang-migrate receives its table name.
func DSN(cfg *config.Config, endpoint config.PostgresEndpoint, extra url.Values) string {
	query := url.Values{}
	if endpoint.SSLMode != "" {
		query.Set("sslmode", endpoint.SSLMode)
	}

	if endpoint.Timezone != "" {
		query.Set("timezone", endpoint.Timezone)
	}

	for key, values := range extra {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(endpoint.Username, endpoint.Password),
		Host:     net.JoinHostPort(endpoint.Host, endpoint.Port),
		Path:     "/" + cfg.DB.Postgres.Prefix + endpoint.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(cfg *config.Config, name string, endpoint config.PostgresEndpoint) *sqlx.DB {
	pool := cfg.DB.Postgres
	logger := log.With().
		Str("name", name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", pool.Prefix+endpoint.Name).
		Logger()

	for attempt := 1; attempt <= max(pool.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, DSN(cfg, endpoint, nil))
		if err == nil {
			db.SetMaxOpenConns(pool.MaxOpenConns)
			db.SetMaxIdleConns(pool.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeMinutes) * time.Minute)

			logger.Info().Msg("Connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Msg("Giving up connecting to database")

	return nil
}
