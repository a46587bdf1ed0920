package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/iWorld-y/growth_radar/app/growth/internal/conf"
)

const defaultTimeout = 5 * time.Second

type Data struct {
	db      *sql.DB
	rdb     *redis.Client
	timeout time.Duration
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)

	driver := c.Database.Driver
	if driver == "" {
		driver = "postgres"
	}
	db, err := sql.Open(driver, c.Database.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	d := &Data{db: db, timeout: parseTimeout(c.Timeout)}

	if c.Redis != nil && c.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       int(c.Redis.Db),
		})
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			db.Close()
			return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		d.rdb = rdb
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if d.rdb != nil {
			d.rdb.Close()
		}
		db.Close()
	}
	return d, cleanup, nil
}

func parseTimeout(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	return defaultTimeout
}

// withTimeout 每次账本/历史/缓存操作独立超时
func (d *Data) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d.timeout)
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS user_credits (
			user_id TEXT PRIMARY KEY,
			total_credits INTEGER NOT NULL CHECK (total_credits >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS credit_transactions (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES user_credits(user_id),
			amount INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS growth_dashboard_history (
			id UUID PRIMARY KEY,
			user_id TEXT NOT NULL,
			analysis_data JSONB NOT NULL,
			credits_consumed INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_growth_history_user_created
			ON growth_dashboard_history (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS api_cache (
			user_id TEXT NOT NULL,
			source TEXT NOT NULL,
			query TEXT NOT NULL,
			data BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, source, query)
		)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}
