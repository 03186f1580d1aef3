package database

import (
	"path/filepath"
	"testing"

	"github.com/rakshit-singh2/fundraising-backend/internal/config"
	"github.com/rakshit-singh2/fundraising-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestInit_SQLiteMigrates(t *testing.T) {
	for name, path := range map[string]string{
		"memory": "",
		"file":   filepath.Join(t.TempDir(), "fundraising.db"),
	} {
		t.Run(name, func(t *testing.T) {
			db, err := Init(config.DatabaseConfig{Driver: "sqlite", Path: path, LogLevel: "silent"})
			require.NoError(t, err)
			t.Cleanup(func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			})

			for _, table := range []string{"project", "investment", "token"} {
				assert.True(t, db.Migrator().HasTable(table), table)
			}
			assert.True(t, db.Migrator().HasIndex(&model.InvestmentModel{}, "idx_investment_investor_project"))
		})
	}
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(config.DatabaseConfig{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Error, gormLogLevel("ERROR"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
