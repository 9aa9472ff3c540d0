package postgres_test

import (
	"net/url"
	"testing"

	"coating/config"
	"coating/infras/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "staging_"

	endpoint := config.PostgresEndpoint{
		Host:     "db.internal",
		Port:     "5432",
		Username: "coating",
		Password: "p@ss/word",
		Name:     "coating",
		Timezone: "Asia/Ho_Chi_Minh",
		SSLMode:  "disable",
	}

	dsn := postgres.DSN(cfg, endpoint, url.Values{"x-migrations-table": {"schema_migrations"}})

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/word", password)
	assert.Equal(t, "db.internal:5432", parsed.Host)
	assert.Equal(t, "/staging_coating", parsed.Path)
	assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
	assert.Equal(t, "Asia/Ho_Chi_Minh", parsed.Query().Get("timezone"))
	assert.Equal(t, "schema_migrations", parsed.Query().Get("x-migrations-table"))
}

func TestDSN_OmitsEmptyOptions(t *testing.T) {
	dsn := postgres.DSN(&config.Config{}, config.PostgresEndpoint{Host: "localhost", Port: "5432", Name: "coating"}, nil)

	parsed, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Empty(t, parsed.RawQuery)
}
