package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/config"
)

func TestPoolConfig(t *testing.T) {
	cfg := config.PostgresConfig{
		DSN:             "postgres://u:p@localhost:5432/coffee?sslmode=disable",
		ApplicationName: "crud-backends-coffee",
		MaxConns:        8,
		MinConns:        2,
		ConnMaxIdleSec:  30,
		ConnMaxLifeSec:  300,
	}

	poolCfg, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "crud-backends-coffee", poolCfg.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, int32(8), poolCfg.MaxConns)
	assert.Equal(t, int32(2), poolCfg.MinConns)
	assert.Equal(t, 30*time.Second, poolCfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Minute, poolCfg.MaxConnLifetime)
}

func TestPoolConfig_DSNApplicationNameWins(t *testing.T) {
	poolCfg, err := poolConfig(config.PostgresConfig{
		DSN:             "postgres://u:p@localhost:5432/trivia?application_name=reporting",
		ApplicationName: "crud-backends-trivia",
	})
	require.NoError(t, err)

	assert.Equal(t, "reporting", poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_InvalidDSN(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{DSN: "postgres://u:p@localhost:notaport/db"})
	assert.ErrorContains(t, err, "POSTGRES_DSN")
}

func TestNewPostgres_NoDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}
