package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"playlist-server/internal/shared/database"

	"github.com/lib/pq"
)

// Repository persists the mission graph in Postgres
type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing dataset repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) Load(ctx context.Context) (*Dataset, error) {
	logger := r.logger.With("component", "dataset_repository", "operation", "load")
	logger.Debug("Loading mission graph")

	ds := New()

	if err := r.loadMissionTypes(ctx, ds); err != nil {
		logger.Error("Failed to load mission types", "error", err)
		return nil, err
	}
	if err := r.loadMissions(ctx, ds); err != nil {
		logger.Error("Failed to load missions", "error", err)
		return nil, err
	}
	if err := r.loadSystems(ctx, ds); err != nil {
		logger.Error("Failed to load systems", "error", err)
		return nil, err
	}
	if err := r.loadPlanets(ctx, ds); err != nil {
		logger.Error("Failed to load planets", "error", err)
		return nil, err
	}
	if err := r.loadLinks(ctx, ds); err != nil {
		logger.Error("Failed to load links", "error", err)
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		logger.Error("Stored mission graph is invalid", "error", err)
		return nil, err
	}

	logger.Debug("Mission graph loaded",
		"missions", len(ds.Missions),
		"planets", len(ds.Planets),
		"links", len(ds.Links),
	)
	return ds, nil
}

func (r *Repository) loadMissionTypes(ctx context.Context, ds *Dataset) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM mission_types`)
	if err != nil {
		return fmt.Errorf("failed to query mission types: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var id string
		var t MissionType
		if err := rows.Scan(&id, &t.Name); err != nil {
			return fmt.Errorf("failed to scan mission type: %w", err)
		}
		ds.MissionTypes[id] = t
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating mission types: %w", err)
	}
	return nil
}

func (r *Repository) loadMissions(ctx context.Context, ds *Dataset) error {
	query := `
		SELECT id, parent_id, name, description, time_minutes, faction, alignment, disabled
		FROM missions
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query missions: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var id string
		var m Mission
		var alignment []string
		err := rows.Scan(
			&id,
			&m.ParentID,
			&m.Name,
			&m.Description,
			&m.Time,
			&m.Faction,
			pq.Array(&alignment),
			&m.Disabled,
		)
		if err != nil {
			return fmt.Errorf("failed to scan mission: %w", err)
		}
		m.Alignment = make([]Alignment, 0, len(alignment))
		for _, a := range alignment {
			m.Alignment = append(m.Alignment, Alignment(a))
		}
		ds.Missions[id] = m
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating missions: %w", err)
	}
	return nil
}

func (r *Repository) loadSystems(ctx context.Context, ds *Dataset) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM systems`)
	if err != nil {
		return fmt.Errorf("failed to query systems: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var id string
		var s System
		if err := rows.Scan(&id, &s.Name); err != nil {
			return fmt.Errorf("failed to scan system: %w", err)
		}
		ds.Systems[id] = s
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating systems: %w", err)
	}
	return nil
}

func (r *Repository) loadPlanets(ctx context.Context, ds *Dataset) error {
	rows, err := r.db.QueryContext(ctx, `SELECT id, parent_id, name FROM planets`)
	if err != nil {
		return fmt.Errorf("failed to query planets: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var id string
		var p Planet
		if err := rows.Scan(&id, &p.ParentID, &p.Name); err != nil {
			return fmt.Errorf("failed to scan planet: %w", err)
		}
		ds.Planets[id] = p
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating planets: %w", err)
	}
	return nil
}

func (r *Repository) loadLinks(ctx context.Context, ds *Dataset) error {
	rows, err := r.db.QueryContext(ctx, `SELECT mission_id, planet_id FROM links ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to query links: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.Error("Failed to close rows", "error", err)
		}
	}()

	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.From, &l.To); err != nil {
			return fmt.Errorf("failed to scan link: %w", err)
		}
		ds.Links = append(ds.Links, l)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating links: %w", err)
	}
	return nil
}

// Save replaces the stored graph with ds in a single transaction. The tables
// carry no foreign keys so dangling references survive a round trip.
func (r *Repository) Save(ctx context.Context, ds *Dataset) error {
	logger := r.logger.With("component", "dataset_repository", "operation", "save")
	logger.Debug("Saving mission graph")

	tx, err := r.db.BeginTxContext(ctx)
	if err != nil {
		logger.Error("Failed to begin transaction", "error", err)
		return err
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Error("Failed to rollback transaction", "error", err)
		}
	}()

	for _, table := range []string{"links", "missions", "planets", "mission_types", "systems"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			logger.Error("Failed to clear table", "table", table, "error", err)
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, id := range sortedKeys(ds.MissionTypes) {
		_, err := tx.ExecContext(ctx, `INSERT INTO mission_types (id, name) VALUES ($1, $2)`, id, ds.MissionTypes[id].Name)
		if err != nil {
			return fmt.Errorf("failed to insert mission type %s: %w", id, err)
		}
	}

	for _, id := range sortedKeys(ds.Systems) {
		_, err := tx.ExecContext(ctx, `INSERT INTO systems (id, name) VALUES ($1, $2)`, id, ds.Systems[id].Name)
		if err != nil {
			return fmt.Errorf("failed to insert system %s: %w", id, err)
		}
	}

	for _, id := range sortedKeys(ds.Planets) {
		p := ds.Planets[id]
		_, err := tx.ExecContext(ctx, `INSERT INTO planets (id, parent_id, name) VALUES ($1, $2, $3)`, id, p.ParentID, p.Name)
		if err != nil {
			return fmt.Errorf("failed to insert planet %s: %w", id, err)
		}
	}

	missionQuery := `
		INSERT INTO missions (id, parent_id, name, description, time_minutes, faction, alignment, disabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, id := range sortedKeys(ds.Missions) {
		m := ds.Missions[id]
		alignment := make([]string, 0, len(m.Alignment))
		for _, a := range m.Alignment {
			alignment = append(alignment, string(a))
		}
		_, err := tx.ExecContext(ctx, missionQuery,
			id, m.ParentID, m.Name, m.Description, m.Time, m.Faction, pq.Array(alignment), m.Disabled)
		if err != nil {
			return fmt.Errorf("failed to insert mission %s: %w", id, err)
		}
	}

	for i, l := range ds.Links {
		_, err := tx.ExecContext(ctx, `INSERT INTO links (position, mission_id, planet_id) VALUES ($1, $2, $3)`, i, l.From, l.To)
		if err != nil {
			return fmt.Errorf("failed to insert link %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit mission graph", "error", err)
		return fmt.Errorf("failed to commit mission graph: %w", err)
	}

	logger.Info("Mission graph saved",
		"missions", len(ds.Missions),
		"planets", len(ds.Planets),
		"links", len(ds.Links),
	)
	return nil
}
