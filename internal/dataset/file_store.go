package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps the mission graph in a single JSON document on disk
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	logger.Debug("Initializing dataset file store", "path", path)

	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (s *FileStore) Load(ctx context.Context) (*Dataset, error) {
	logger := s.logger.With("component", "dataset_file_store", "operation", "load", "path", s.path)

	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Error("Failed to read dataset file", "error", err)
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	ds, err := Parse(data)
	if err != nil {
		logger.Error("Failed to parse dataset file", "error", err)
		return nil, err
	}

	logger.Debug("Dataset loaded",
		"missions", len(ds.Missions),
		"planets", len(ds.Planets),
		"links", len(ds.Links),
	)
	return ds, nil
}

// Save writes the document to a temporary file and renames it into place
func (s *FileStore) Save(ctx context.Context, ds *Dataset) error {
	logger := s.logger.With("component", "dataset_file_store", "operation", "save", "path", s.path)

	data, err := ds.Marshal()
	if err != nil {
		logger.Error("Failed to encode dataset", "error", err)
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".missions-*.json")
	if err != nil {
		logger.Error("Failed to create temporary file", "error", err)
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove temporary file", "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		logger.Error("Failed to write dataset", "error", err)
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		logger.Error("Failed to replace dataset file", "error", err)
		return fmt.Errorf("failed to replace dataset file: %w", err)
	}

	logger.Debug("Dataset saved", "size_bytes", len(data))
	return nil
}
