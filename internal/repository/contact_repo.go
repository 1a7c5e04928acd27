package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AbhishekS200607/quickaid/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrContactNotFound is returned when an update or delete matched no row
var ErrContactNotFound = errors.New("contact not found")

// ContactRepository defines operations for contact data
type ContactRepository interface {
	Find(ctx context.Context, q model.ContactQuery) ([]model.Contact, error)
	DistinctCities(ctx context.Context, verified bool, exclude string) ([]string, error)
	Create(ctx context.Context, contact *model.Contact) error
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// DB is the subset of *pgxpool.Pool used by the repository
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

const contactColumns = `id::text, name, phone, category, city, description, is_verified, upvotes, created_at`

// orderColumns whitelists sort keys so they can be spliced into SQL
var orderColumns = map[string]string{
	model.OrderByUpvotes:   "upvotes",
	model.OrderByCreatedAt: "created_at",
}

type contactRepository struct {
	db DB
}

// NewContactRepository creates a PostgreSQL backed ContactRepository
func NewContactRepository(db DB) ContactRepository {
	return &contactRepository{db: db}
}

var _ ContactRepository = (*contactRepository)(nil)

// Find lists contacts by verification state with an optional city OR-filter
func (r *contactRepository) Find(ctx context.Context, q model.ContactQuery) ([]model.Contact, error) {
	order, ok := orderColumns[q.OrderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported order column %q", q.OrderBy)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + contactColumns + ` FROM emergency_contacts WHERE is_verified = $1`)
	args := []any{q.Verified}

	if len(q.CityIn) > 0 {
		queryBuilder.WriteString(" AND city = ANY($2)")
		args = append(args, q.CityIn)
	}
	queryBuilder.WriteString(" ORDER BY " + order + " DESC")

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Category, &c.City, &c.Description,
			&c.IsVerified, &c.Upvotes, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}
	return contacts, nil
}

// DistinctCities returns the distinct city values, sorted, skipping exclude
func (r *contactRepository) DistinctCities(ctx context.Context, verified bool, exclude string) ([]string, error) {
	sql := `SELECT DISTINCT city FROM emergency_contacts WHERE is_verified = $1 AND city <> $2 ORDER BY city`
	rows, err := r.db.Query(ctx, sql, verified, exclude)
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
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating city rows: %w", err)
	}
	return cities, nil
}

// Create inserts a contact and fills in the store-assigned id and created_at
func (r *contactRepository) Create(ctx context.Context, c *model.Contact) error {
	sql := `INSERT INTO emergency_contacts (name, phone, category, city, description, is_verified, upvotes)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id::text, created_at`
	err := r.db.QueryRow(ctx, sql, c.Name, c.Phone, c.Category, c.City, c.Description, c.IsVerified, c.Upvotes).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// SetVerified flips the verification flag of one contact
func (r *contactRepository) SetVerified(ctx context.Context, id string, verified bool) error {
	// ids are UUIDs; anything else cannot match a row
	if _, err := uuid.Parse(id); err != nil {
		return ErrContactNotFound
	}
	cmdTag, err := r.db.Exec(ctx, `UPDATE emergency_contacts SET is_verified = $1 WHERE id = $2`, verified, id)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

// Delete removes a contact from the database
func (r *contactRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrContactNotFound
	}
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM emergency_contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *contactRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
