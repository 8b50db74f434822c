package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dc-flow-dashboard/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	// Una variable vacía cuenta como no definida.
	for _, k := range []string{"DB_DRIVER", "HTTP_PORT", "EXPORT_DIR", "LOG_LEVEL", "APP_NAME"} {
		t.Setenv(k, "")
	}
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.Source.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "./exports", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "dc-flow-dashboard", cfg.App.Name)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/dc.db")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EXPORT_ENCODING", "windows-1252")
	t.Setenv("DB_INBOUND_TABLE", "staging.IB")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Source.Driver)
	assert.Equal(t, "/tmp/dc.db", cfg.Source.SQLitePath)
	assert.Equal(t, "staging.IB", cfg.Source.InboundTable)
	assert.Equal(t, "temporary_data.OUTBOUND_STANDARD", cfg.Source.OutboundTable)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "windows-1252", cfg.Export.Encoding)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "dash", Password: "p@ss:word", DBName: "wms", SSLMode: "disable"}
	assert.Equal(t, "postgres://dash:p%40ss%3Aword@db:5432/wms?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u@h/x"
	assert.Equal(t, "postgres://u@h/x", c.ConnectionString())
}
