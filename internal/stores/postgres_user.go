package stores

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/authcove/authcove"
	"github.com/authcove/authcove/password"
)

// PgxPool is the slice of pgxpool.Pool the user store needs. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresUserStore persists credential records in PostgreSQL.
// Duplicate detection relies on the unique constraint on users.email,
// so two racing Adds for the same email are resolved atomically by the
// database.
//
// Schema:
//
//	CREATE TABLE users (
//	    email         TEXT PRIMARY KEY,
//	    password_hash TEXT NOT NULL,
//	    requires_2fa  BOOLEAN NOT NULL DEFAULT FALSE
//	);
type PostgresUserStore struct {
	db     PgxPool
	hasher *password.Pool
}

// NewPostgresUserStore creates a store backed by db, hashing through
// hasher.
func NewPostgresUserStore(db PgxPool, hasher *password.Pool) *PostgresUserStore {
	return &PostgresUserStore{db: db, hasher: hasher}
}

// Add hashes the password and inserts the record. A unique violation
// maps to ErrUserAlreadyExists.
func (s *PostgresUserStore) Add(ctx context.Context, email authcove.Email, pw authcove.Password, requiresTwoFA bool) error {
	hash, err := s.hasher.Hash(ctx, pw.String())
	if err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`,
		email.String(), hash, requiresTwoFA,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return authcove.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	return nil
}

// Get returns the record for email or ErrUserNotFound.
func (s *PostgresUserStore) Get(ctx context.Context, email authcove.Email) (authcove.User, error) {
	return s.fetch(ctx, email)
}

// Validate fetches the record and verifies the candidate password
// against the stored hash.
func (s *PostgresUserStore) Validate(ctx context.Context, email authcove.Email, pw authcove.Password) error {
	user, err := s.fetch(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(ctx, pw.String(), user.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}
	if !ok {
		return authcove.ErrInvalidCredentials
	}
	return nil
}

func (s *PostgresUserStore) fetch(ctx context.Context, email authcove.Email) (authcove.User, error) {
	var (
		rawEmail      string
		hash          string
		requiresTwoFA bool
	)
	err := s.db.QueryRow(ctx,
		`SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`,
		email.String(),
	).Scan(&rawEmail, &hash, &requiresTwoFA)
	if errors.Is(err, pgx.ErrNoRows) {
		return authcove.User{}, authcove.ErrUserNotFound
	}
	if err != nil {
		return authcove.User{}, fmt.Errorf("%w: %v", authcove.ErrUnexpected, err)
	}

	parsed, err := authcove.ParseEmail(rawEmail)
	if err != nil {
		return authcove.User{}, fmt.Errorf("%w: stored email malformed", authcove.ErrUnexpected)
	}
	return authcove.User{
		Email:         parsed,
		PasswordHash:  hash,
		RequiresTwoFA: requiresTwoFA,
	}, nil
}

var _ authcove.UserStore = (*PostgresUserStore)(nil)
