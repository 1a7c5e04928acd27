package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/AbhishekS200607/quickaid/internal/logging"
	"github.com/AbhishekS200607/quickaid/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// ConnectDB establishes a connection pool to PostgreSQL, retrying while the
// database comes up
func ConnectDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	err := retry(ctx, connectAttempts, connectInterval, sleepCtx, func(attempt int) error {
		p, err := pgxpool.New(ctx, dsn)
		if err == nil {
			if err = p.Ping(ctx); err == nil {
				pool = p
				return nil
			}
			p.Close()
		}
		logging.Log.WithError(err).WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": connectAttempts,
		}).Warn("failed to connect to database")
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectAttempts, err)
	}
	logging.Log.Info("connected to PostgreSQL")
	return pool, nil
}

const (
	connectAttempts = 5
	connectInterval = 5 * time.Second
)

// retry calls fn up to attempts times, waiting interval between failures,
// and returns the last error. There is no wait after the last attempt.
func retry(ctx context.Context, attempts int, interval time.Duration,
	wait func(context.Context, time.Duration) error, fn func(attempt int) error) error {
	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(i); err == nil {
			return nil
		}
		if i == attempts {
			break
		}
		if werr := wait(ctx, interval); werr != nil {
			return werr
		}
	}
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// AutoMigrate creates the contacts table if it doesn't exist
func AutoMigrate(ctx context.Context, db *pgxpool.Pool) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS emergency_contacts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name VARCHAR(100) NOT NULL,
		phone VARCHAR(20) NOT NULL,
		category TEXT NOT NULL,
		city VARCHAR(50) NOT NULL,
		description VARCHAR(500),
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		upvotes INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_emergency_contacts_verified_upvotes ON emergency_contacts(is_verified, upvotes DESC);
	CREATE INDEX IF NOT EXISTS idx_emergency_contacts_verified_created ON emergency_contacts(is_verified, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_emergency_contacts_city ON emergency_contacts(city);
	`
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	logging.Log.Info("AutoMigrate applied successfully")
	return nil
}

// Store is an open contact repository together with its cleanup
type Store struct {
	Contacts repository.ContactRepository
	Close    func()
}

// OpenStore connects to the configured backend and prepares its schema
func OpenStore(ctx context.Context, cfg *Config) (*Store, error) {
	switch cfg.StoreDriver {
	case DriverPostgres:
		pool, err := ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := AutoMigrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Store{Contacts: repository.NewContactRepository(pool), Close: pool.Close}, nil
	case DriverSQLite:
		db, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logging.Log.WithField("path", cfg.SQLitePath).Info("using SQLite store")
		return &Store{Contacts: repository.NewSQLiteContactRepository(db), Close: closeQuietly(db)}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func closeQuietly(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			logging.Log.WithError(err).Warn("closing sqlite store")
		}
	}
}
