package helper_test

import (
	"testing"

	"studio/config"
	"studio/helper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionString(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Prefix = "test_"
	cfg.DB.Postgres.MigrationTable = "schema_migrations"
	cfg.DB.Postgres.Write = config.Database{
		Host:     "db",
		Port:     "5432",
		Username: "studio",
		Password: "p@ss/word",
		Name:     "studio",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"postgres://studio:p%40ss%2Fword@db:5432/test_studio?sslmode=disable&x-migrations-table=schema_migrations",
		helper.ConnectionString(cfg))
}

func TestRunner_UnknownAction(t *testing.T) {
	err := helper.Runner(&config.Config{}, "sideways")

	require.Error(t, err)
	assert.ErrorIs(t, err, helper.ErrUnknownAction)
}
