package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (id, username, password_hash, upstream_user_id, upstream_api_password, agency_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, username, password_hash, upstream_user_id, upstream_api_password, agency_id, created_at
	`
	var created User
	err := s.db.QueryRowContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.UpstreamUserID, u.UpstreamAPIPassword, u.AgencyID,
	).Scan(
		&created.ID, &created.Username, &created.PasswordHash,
		&created.UpstreamUserID, &created.UpstreamAPIPassword, &created.AgencyID, &created.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return User{}, ErrUsernameTaken
	}
	if err != nil {
		return User{}, fmt.Errorf("create user %s: %w", u.Username, err)
	}
	return created, nil
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, upstream_user_id, upstream_api_password, agency_id, created_at
		FROM users WHERE username = $1
	`, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash,
		&u.UpstreamUserID, &u.UpstreamAPIPassword, &u.AgencyID, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", username, err)
	}
	return u, nil
}
