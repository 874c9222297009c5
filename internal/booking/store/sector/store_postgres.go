package sector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tanchhohang/airlines-api/internal/booking/models"
)

// PostgresStore persists sectors in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed sector store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) UpsertByCode(ctx context.Context, code, name string) (models.Sector, error) {
	query := `
		INSERT INTO sectors (sector_code, sector_name)
		VALUES ($1, $2)
		ON CONFLICT (sector_code) DO UPDATE SET
			sector_name = EXCLUDED.sector_name
		RETURNING sector_code, sector_name
	`
	var sector models.Sector
	err := s.db.QueryRowContext(ctx, query, code, name).Scan(&sector.SectorCode, &sector.SectorName)
	if err != nil {
		return models.Sector{}, fmt.Errorf("upsert sector %s: %w", code, err)
	}
	return sector, nil
}

func (s *PostgresStore) GetByCode(ctx context.Context, code string) (models.Sector, error) {
	var sector models.Sector
	err := s.db.QueryRowContext(ctx,
		`SELECT sector_code, sector_name FROM sectors WHERE sector_code = $1`, code,
	).Scan(&sector.SectorCode, &sector.SectorName)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sector{}, ErrNotFound
	}
	if err != nil {
		return models.Sector{}, fmt.Errorf("get sector %s: %w", code, err)
	}
	return sector, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]models.Sector, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sector_code, sector_name FROM sectors ORDER BY sector_code`)
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	defer rows.Close()

	var sectors []models.Sector
	for rows.Next() {
		var sector models.Sector
		if err := rows.Scan(&sector.SectorCode, &sector.SectorName); err != nil {
			return nil, fmt.Errorf("scan sector: %w", err)
		}
		sectors = append(sectors, sector)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	return sectors, nil
}

func (s *PostgresStore) Delete(ctx context.Context, code string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sectors WHERE sector_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete sector %s: %w", code, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sector %s: %w", code, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
