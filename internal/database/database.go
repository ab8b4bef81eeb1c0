package database

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathakanu/phtReminder/internal/model"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New creates a GORM database connection.
// When databaseURL is provided PostgreSQL is used, otherwise SQLite at sqlitePath.
func New(databaseURL, sqlitePath string, log *zap.SugaredLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, err
	}

	logBackend(db, sqlitePath, log)
	return db, nil
}

// Open connects through dialector and migrates the schema.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("dialector", dialector.Name()))
	}

	if err := db.AutoMigrate(&model.Record{}); err != nil {
		return nil, goerr.Wrap(err, "failed to migrate schema")
	}
	return db, nil
}

func logBackend(db *gorm.DB, sqlitePath string, log *zap.SugaredLogger) {
	dialector := db.Dialector.Name()
	switch strings.ToLower(dialector) {
	case "postgres":
		log.Infow("database: connected to PostgreSQL")
	case "sqlite":
		log.Infow("database: using SQLite", "path", sqlitePath)
	default:
		log.Infow("database: connected", "dialector", dialector)
	}
}
