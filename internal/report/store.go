package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Store persists generated report files and reads them back for download.
type Store interface {
	// Save writes the file contents under the given name and returns the
	// path the report record should reference.
	Save(ctx context.Context, name string, data []byte) (string, error)

	// Open returns a reader for a previously saved report file.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fileStore implements Store on the local file system.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a store that writes report files under dir.
func NewFileStore(dir string, logger zerolog.Logger) Store {
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "file-report-store").Logger(),
	}
}

// Save writes the report file to the local directory, creating it if needed.
func (s *fileStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create reports directory")
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to write report file")
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	s.logger.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Msg("report file written")

	return path, nil
}

// Open returns a reader for a previously saved report file.
func (s *fileStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to open report file")
		return nil, fmt.Errorf("failed to open report file: %w", err)
	}
	return f, nil
}
