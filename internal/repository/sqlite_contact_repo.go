package repository

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AbhishekS200607/quickaid/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var sqliteMigrations embed.FS

// OpenSQLite opens a SQLite database and applies the embedded migrations.
// Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applySQLiteMigrations(db, sqliteMigrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

// applySQLiteMigrations runs every migrations/*.sql file at most once
func applySQLiteMigrations(db *sql.DB, migrationFS fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		name := filepath.Base(file)
		var applied bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = ?)`, name).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied {
			continue
		}
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, name, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}

type sqliteContactRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteContactRepository creates a ContactRepository over a database
// returned by OpenSQLite
func NewSQLiteContactRepository(db *sql.DB) ContactRepository {
	return &sqliteContactRepository{db: db, now: time.Now}
}

var _ ContactRepository = (*sqliteContactRepository)(nil)

const sqliteContactColumns = `id, name, phone, category, city, description, is_verified, upvotes, created_at`

func (r *sqliteContactRepository) Find(ctx context.Context, q model.ContactQuery) ([]model.Contact, error) {
	order, ok := orderColumns[q.OrderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported order column %q", q.OrderBy)
	}

	query := `SELECT ` + sqliteContactColumns + ` FROM emergency_contacts WHERE is_verified = ?`
	args := []any{q.Verified}
	if len(q.CityIn) > 0 {
		query += " AND city IN (" + strings.TrimSuffix(strings.Repeat("?,", len(q.CityIn)), ",") + ")"
		for _, city := range q.CityIn {
			args = append(args, city)
		}
	}
	query += " ORDER BY " + order + " DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var (
			c         model.Contact
			createdAt int64
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Category, &c.City, &c.Description,
			&c.IsVerified, &c.Upvotes, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		c.CreatedAt = time.UnixMilli(createdAt).UTC()
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}

func (r *sqliteContactRepository) DistinctCities(ctx context.Context, verified bool, exclude string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT city FROM emergency_contacts WHERE is_verified = ? AND city <> ? ORDER BY city`,
		verified, exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	cities := []string{}
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}
	return cities, nil
}

func (r *sqliteContactRepository) Create(ctx context.Context, c *model.Contact) error {
	id := uuid.NewString()
	createdAt := r.now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO emergency_contacts (`+sqliteContactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, c.Name, c.Phone, c.Category, c.City, c.Description, c.IsVerified, c.Upvotes, createdAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	c.ID = id
	c.CreatedAt = time.UnixMilli(createdAt.UnixMilli()).UTC()
	return nil
}

func (r *sqliteContactRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE emergency_contacts SET is_verified = ? WHERE id = ?`, verified, id)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	return requireAffected(res)
}

func (r *sqliteContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return requireAffected(res)
}

func (r *sqliteContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrContactNotFound
	}
	return nil
}
