package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fordeling/internal/journal"
	"fordeling/internal/routing"
	"fordeling/internal/routing/models"
)

// Store keeps one row per routed event in routing_decision. Redelivered
// events are ignored via ON CONFLICT DO NOTHING.
type Store struct {
	db *sql.DB
}

// New creates a Postgres decision store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record implements journal.DecisionSink.
func (s *Store) Record(ctx context.Context, rec journal.Record) error {
	query := `
		INSERT INTO routing_decision (
			event_key, sed_id, sed_type, rina_sak_id, buc_type,
			enhet_nr, source, request_id, routed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (event_key) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		rec.EventKey,
		rec.SedID,
		rec.SedType,
		rec.RinaCaseID,
		string(rec.Category),
		rec.UnitCode,
		string(rec.Source),
		rec.RequestID,
		rec.RoutedAt,
	)
	if err != nil {
		return fmt.Errorf("insert routing decision: %w", err)
	}
	return nil
}

// ListByCase returns every decision recorded for a RINA case, oldest first.
func (s *Store) ListByCase(ctx context.Context, rinaCaseID string) ([]journal.Record, error) {
	query := `
		SELECT event_key, sed_id, sed_type, rina_sak_id, buc_type,
		       enhet_nr, source, request_id, routed_at
		FROM routing_decision
		WHERE rina_sak_id = $1
		ORDER BY routed_at, event_key
	`
	rows, err := s.db.QueryContext(ctx, query, rinaCaseID)
	if err != nil {
		return nil, fmt.Errorf("query routing decisions: %w", err)
	}
	defer rows.Close()

	var out []journal.Record
	for rows.Next() {
		var (
			rec      journal.Record
			category string
			source   string
			routedAt time.Time
		)
		if err := rows.Scan(
			&rec.EventKey, &rec.SedID, &rec.SedType, &rec.RinaCaseID, &category,
			&rec.UnitCode, &source, &rec.RequestID, &routedAt,
		); err != nil {
			return nil, fmt.Errorf("scan routing decision: %w", err)
		}
		rec.Category = models.CaseCategory(category)
		rec.Source = routing.DecisionSource(source)
		rec.RoutedAt = routedAt.UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routing decisions: %w", err)
	}
	return out, nil
}

// Schema creates the decision table. Deployments run it through their
// migration tool; tests call it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS routing_decision (
	event_key   TEXT PRIMARY KEY,
	sed_id      TEXT NOT NULL DEFAULT '',
	sed_type    TEXT NOT NULL DEFAULT '',
	rina_sak_id TEXT NOT NULL,
	buc_type    TEXT NOT NULL,
	enhet_nr    TEXT NOT NULL,
	source      TEXT NOT NULL,
	request_id  TEXT NOT NULL DEFAULT '',
	routed_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS routing_decision_rina_sak_id_idx ON routing_decision (rina_sak_id);
`
