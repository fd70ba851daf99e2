// Package db opens the gorm connection for the configured engine and
// migrates the settings schema.
package db

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/config"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db/dsn"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/db/models"
	"github.com/khalil0525/sample-app-aoai-chatGPT/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 200 * time.Millisecond

// ErrConfigNil is returned by Open if no db config was passed.
var ErrConfigNil = errors.New("db config is nil")

// Dialector returns the gorm dialector for cfg.Engine.
func Dialector(cfg *config.DB) (gorm.Dialector, error) {
	switch cfg.Engine {
	case config.EngineSQLite, "":
		return sqlite.Open(cfg.Path), nil
	case config.EngineMySQL:
		return gormmysql.Open(dsn.MySQL(cfg)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Postgres(cfg)), nil
	default:
		return nil, errors.Wrapf(config.ErrUnknownDBEngine, "engine %q", cfg.Engine)
	}
}

// Open connects to the configured database and migrates models.Setting.
func Open(cfg *config.DB) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlogger.NewWithLevel("gorm", zerolog.WarnLevel),
			gormlogger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s database", cfg.Engine)
	}

	// sqlite: one connection keeps ":memory:" databases alive and avoids "database is locked"
	if cfg.Engine == config.EngineSQLite || cfg.Engine == "" {
		sqlDB, errDB := db.DB()
		if errDB != nil {
			return nil, errors.Wrap(errDB, "failed to get sql db")
		}

		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err = db.AutoMigrate(&models.Setting{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
