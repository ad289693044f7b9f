package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultTimeout = 5 * time.Second

// Config captures the connection string and pool settings.
type Config struct {
	DSN         string
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	Timeout     time.Duration
}

// DB shares one pgx-backed pool between sqlx (aggregate queries) and GORM
// (entity persistence and migrations).
type DB struct {
	SQL *sqlx.DB
	ORM *gorm.DB
}

// Connect opens the pool, verifies it with a ping and a SELECT 1, and layers
// GORM on top of the same connections.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	pgxCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	pgxCfg.ConnectTimeout = timeout

	sqlDB := stdlib.OpenDB(*pgxCfg)
	if cfg.MaxOpen > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	if cfg.MaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	var one int
	if err := sqlDB.QueryRowContext(pingCtx, "SELECT 1").Scan(&one); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres health query: %w", err)
	}

	orm, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		// refunds.user_id has no foreign key; deleting a user keeps its refunds.
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Discard,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres: open gorm: %w", err)
	}

	return &DB{SQL: sqlx.NewDb(sqlDB, "pgx"), ORM: orm}, nil
}

// Migrate creates or updates the users, clients and refunds tables.
func (d *DB) Migrate(ctx context.Context) error {
	if err := d.ORM.WithContext(ctx).AutoMigrate(&userRow{}, &clientRow{}, &refundRow{}); err != nil {
		return fmt.Errorf("postgres migrate: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SQL.Close()
}
