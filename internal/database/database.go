package database

import (
	"context"
	"time"

	"github.com/DODOEX/b64huff/internal/database/schema"
	"github.com/DODOEX/b64huff/utils/config"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setup database with gorm
type Database struct {
	logger zerolog.Logger
	config *config.Conf
	DB     *gorm.DB
}

func NewDatabase(config *config.Conf, logger zerolog.Logger) *Database {
	db := &Database{
		config: config,
		logger: logger.With().Str("name", "database").Logger(),
	}

	return db
}

func (d *Database) Enabled() bool {
	return d.config.Bool("database.enable", false)
}

// connect database
func (d *Database) Connect(ctx context.Context) error {
	if d.DB != nil {
		d.logger.Info().Msg("The database is already connected!")
		return nil
	}

	config := &gorm.Config{
		SkipDefaultTransaction:                   true,
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	d.config.Unmarshal("database.gorm", config)
	db, err := gorm.Open(postgres.Open(d.config.String("database.postgres.dsn")), config)
	if err != nil {
		return err
	}

	d.DB = db

	_db, _ := db.DB()
	_db.SetConnMaxIdleTime(d.config.Duration("database.gorm.conn-max-idle-time", 30*time.Second))
	if d.config.Exists("database.gorm.conn-max-lifetime") {
		_db.SetConnMaxLifetime(d.config.Duration("database.gorm.conn-max-lifetime"))
	}
	if d.config.Exists("database.gorm.max-idle-conns") {
		_db.SetMaxIdleConns(d.config.Int("database.gorm.max-idle-conns"))
	}
	if d.config.Exists("database.gorm.max-open-conns") {
		_db.SetMaxOpenConns(d.config.Int("database.gorm.max-open-conns"))
	}

	if d.config.Bool("database.gorm.migrate", false) {
		d.logger.Info().Msg("- Migrating the database...")
		d.MigrateModels(ctx)
	}

	return nil
}

// shutdown database
func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// list of models for migration
func Models() []interface{} {
	return []interface{}{
		schema.Job{},
	}
}

// migrate models
func (d *Database) MigrateModels(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, d.config.Duration("database.gorm.migrate-timeout", 10*time.Minute))
	defer cancel()
	if err := d.DB.WithContext(ctx).AutoMigrate(
		Models()...,
	); err != nil {
		d.logger.Error().Err(err).Msg("An unknown error occurred when to migrate the database!")
	}
}
