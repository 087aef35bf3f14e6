package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMigrationNames(t *testing.T) {
	names, err := MigrationNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_users.sql"}, names)
}

func TestRunMigrations_SkipsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestPing_Unconfigured(t *testing.T) {
	var pg *Postgres
	assert.Error(t, pg.Ping(context.Background()))

	var rdb *Redis
	assert.Error(t, rdb.Ping(context.Background()))
}
