package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stockd/config"
)

func TestApplicationInitAndMigrate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.System.Workdir = t.TempDir()

	a := NewApplication(cfg)
	require.NoError(t, a.Init())
	defer a.Release()

	require.NotNil(t, a.DB())
	assert.NotNil(t, a.Bus())
	assert.True(t, a.DB().Migrator().HasTable("products"))
	assert.True(t, a.DB().Migrator().HasTable("history"))

	require.NoError(t, a.InitDb())
	assert.True(t, a.DB().Migrator().HasTable("products"))
}

func TestGetDatabaseRejectsUnknownType(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Database.Type = "oracle"

	_, err := getDatabase(cfg)
	require.Error(t, err)
}

func TestOverrideDBAndDropAll(t *testing.T) {
	a := NewApplication(config.DefaultConfig())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	a.OverrideDB(db)
	defer a.Release()

	require.NoError(t, a.MigrateDB())
	assert.True(t, a.DB().Migrator().HasTable("products"))

	a.DropAll()
	assert.False(t, a.DB().Migrator().HasTable("products"))
	assert.False(t, a.DB().Migrator().HasTable("history"))
}
