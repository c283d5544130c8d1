package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Store loads and persists a whole mission graph
type Store interface {
	Load(ctx context.Context) (*Dataset, error)
	Save(ctx context.Context, ds *Dataset) error
}

// Service owns the in-memory mission graph. Edits hold the write lock and are
// persisted before they become visible; readers see a consistent graph.
type Service struct {
	store  Store
	logger *slog.Logger

	mu      sync.RWMutex
	current *Dataset
	version uint64

	subMu       sync.Mutex
	subscribers map[chan Change]struct{}
}

func NewService(store Store, logger *slog.Logger) *Service {
	logger.Debug("Initializing dataset service")

	return &Service{
		store:       store,
		logger:      logger,
		current:     New(),
		subscribers: make(map[chan Change]struct{}),
	}
}

// Reload replaces the in-memory graph with the stored one
func (s *Service) Reload(ctx context.Context) error {
	logger := s.logger.With("component", "dataset_service", "operation", "reload")

	ds, err := s.store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	s.mu.Lock()
	s.current = ds
	s.version++
	version := s.version
	s.mu.Unlock()
	s.publish(Change{Operation: "reload", Version: version})

	if issues := ds.Check(); len(issues) > 0 {
		logger.Warn("Dataset has dangling references", "count", len(issues))
	}
	logger.Info("Dataset loaded",
		"mission_types", len(ds.MissionTypes),
		"missions", len(ds.Missions),
		"systems", len(ds.Systems),
		"planets", len(ds.Planets),
		"links", len(ds.Links),
	)
	return nil
}

// View runs fn against the current graph under the read lock. fn must not
// retain or modify the dataset.
func (s *Service) View(fn func(*Dataset) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.current)
}

// Snapshot returns a deep copy of the current graph
func (s *Service) Snapshot() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Import replaces the whole graph with ds
func (s *Service) Import(ctx context.Context, ds *Dataset) error {
	return s.update(ctx, "import", func(d *Dataset) error {
		*d = *ds.Clone()
		return nil
	})
}

func (s *Service) AddMissionType(ctx context.Context, name string) (string, error) {
	var id string
	err := s.update(ctx, "add_mission_type", func(d *Dataset) error {
		var err error
		id, err = d.AddMissionType(name)
		return err
	})
	return id, err
}

func (s *Service) AddSystem(ctx context.Context, name string) (string, error) {
	var id string
	err := s.update(ctx, "add_system", func(d *Dataset) error {
		var err error
		id, err = d.AddSystem(name)
		return err
	})
	return id, err
}

func (s *Service) PutMission(ctx context.Context, id string, m Mission) (string, error) {
	err := s.update(ctx, "put_mission", func(d *Dataset) error {
		var err error
		id, err = d.PutMission(id, m)
		return err
	})
	return id, err
}

func (s *Service) PutPlanet(ctx context.Context, id string, p Planet) (string, error) {
	err := s.update(ctx, "put_planet", func(d *Dataset) error {
		var err error
		id, err = d.PutPlanet(id, p)
		return err
	})
	return id, err
}

func (s *Service) ToggleMission(ctx context.Context, id string) (bool, error) {
	var disabled bool
	err := s.update(ctx, "toggle_mission", func(d *Dataset) error {
		var err error
		disabled, err = d.ToggleMission(id)
		return err
	})
	return disabled, err
}

func (s *Service) AddLink(ctx context.Context, from, to string) (bool, error) {
	var added bool
	err := s.update(ctx, "add_link", func(d *Dataset) error {
		var err error
		added, err = d.AddLink(from, to)
		return err
	})
	return added, err
}

func (s *Service) RemoveLink(ctx context.Context, from, to string) error {
	return s.update(ctx, "remove_link", func(d *Dataset) error {
		if !d.RemoveLink(from, to) {
			return fmt.Errorf("%w: link %s -> %s", ErrNotFound, from, to)
		}
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, kind Kind, id string) error {
	return s.update(ctx, "delete", func(d *Dataset) error {
		return d.Delete(kind, id)
	})
}

// update applies fn to a copy of the graph, persists the copy and swaps it in
func (s *Service) update(ctx context.Context, operation string, fn func(*Dataset) error) error {
	logger := s.logger.With("component", "dataset_service", "operation", operation)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		logger.Debug("Edit rejected", "error", err)
		return err
	}

	if err := s.store.Save(ctx, next); err != nil {
		logger.Error("Failed to persist dataset", "error", err)
		return fmt.Errorf("failed to persist dataset: %w", err)
	}

	s.current = next
	s.version++
	s.publish(Change{Operation: operation, Version: s.version})
	logger.Debug("Dataset updated", "version", s.version)
	return nil
}
