package units

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresSource reads the unit table from the enhet table. The table is
// owned by the organization master data sync, not by this service.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource constructs a Postgres-backed unit source.
func NewPostgresSource(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// LoadUnits implements Source.
func (s *PostgresSource) LoadUnits(ctx context.Context) ([]Unit, error) {
	query := `
		SELECT enhet_nr, enhet_navn
		FROM enhet
		WHERE aktiv = true
		ORDER BY enhet_nr
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query units: %w", err)
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.Code, &u.DisplayName); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return out, nil
}
