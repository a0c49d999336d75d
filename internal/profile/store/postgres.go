package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/Debbarh/qr-card-connect-hub/internal/profile/models"
	"github.com/Debbarh/qr-card-connect-hub/pkg/platform/sentinel"
	"github.com/Debbarh/qr-card-connect-hub/pkg/requestcontext"
)

// schema is applied by EnsureSchema. The seq column preserves insertion order
// across restarts, which the in-memory store gets for free.
const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         UUID PRIMARY KEY,
	seq        BIGINT GENERATED ALWAYS AS IDENTITY,
	name       TEXT NOT NULL,
	title      TEXT NOT NULL,
	company    TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL,
	phone      TEXT NOT NULL,
	photo      TEXT NOT NULL,
	logo       TEXT NOT NULL DEFAULT '',
	type       TEXT NOT NULL,
	status     TEXT NOT NULL,
	qr_data    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS profiles_status_idx ON profiles (status);
`

const profileColumns = `id, name, title, company, email, phone, photo, logo, type, status, qr_data, created_at, updated_at`

// Postgres persists profiles in PostgreSQL via the pgx stdlib driver.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres opens and pings a connection pool for the given URL.
func OpenPostgres(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the profiles table when missing.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure profiles schema: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, p *models.Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.Name, p.Title, p.Company, p.Email, p.Phone, p.Photo, p.Logo,
		string(p.Type), string(p.Status), p.QRData, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

// SetStatus runs the whole transition, including the activation compensation,
// inside one transaction so readers never observe two active profiles.
func (s *Postgres) SetStatus(ctx context.Context, id uuid.UUID, status models.ProfileStatus) (*models.Profile, error) {
	now := requestcontext.Now(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the target row first so concurrent activations serialize on it.
	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock profile: %w", err)
	}

	if status == models.StatusActive {
		if _, err := tx.ExecContext(ctx, `
			UPDATE profiles SET status = $1, updated_at = $2
			WHERE status = $3 AND id <> $4`,
			string(models.StatusInactive), now, string(models.StatusActive), id,
		); err != nil {
			return nil, fmt.Errorf("demote active profiles: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE profiles SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), now, id,
	); err != nil {
		return nil, fmt.Errorf("update profile status: %w", err)
	}

	row := tx.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return p, nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+` FROM profiles ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (s *Postgres) ListByStatus(ctx context.Context, status models.ProfileStatus) ([]*models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE status = $1 ORDER BY seq`,
		string(status))
	if err != nil {
		return nil, fmt.Errorf("list profiles by status: %w", err)
	}
	defer rows.Close()
	return collectProfiles(rows)
}

func (s *Postgres) FindActive(ctx context.Context) (*models.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+` FROM profiles WHERE status = $1 ORDER BY seq LIMIT 1`,
		string(models.StatusActive))
	return scanProfile(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var typ, status string
	err := row.Scan(&p.ID, &p.Name, &p.Title, &p.Company, &p.Email, &p.Phone,
		&p.Photo, &p.Logo, &typ, &status, &p.QRData, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.Type = models.ProfileType(typ)
	p.Status = models.ProfileStatus(status)
	return &p, nil
}

func collectProfiles(rows *sql.Rows) ([]*models.Profile, error) {
	var out []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

// isUniqueViolation matches the postgres unique_violation SQLSTATE without
// binding to a driver-specific error type.
func isUniqueViolation(err error) bool {
	type sqlState interface{ SQLState() string }
	var state sqlState
	return errors.As(err, &state) && state.SQLState() == "23505"
}
