package filestorage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/otabek/davomat/internal/pkg/logger"
)

// LocalStorage persists generated artifacts on the local filesystem.
// Paths handed to callers are always relative to the base directory;
// that relative path is what goes into the database.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// SaveBytes writes data under the given relative path, creating any
// intermediate directories. Returns the relative path back on success.
func (ls *LocalStorage) SaveBytes(relPath string, data []byte) (string, error) {
	clean, err := ls.resolve(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(clean), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", clean).Msg("Failed to create artifact directory")
		return "", fmt.Errorf("failed to create artifact directory: %w", err)
	}

	if err := os.WriteFile(clean, data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", clean).Msg("Failed to write artifact")
		_ = os.Remove(clean)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	logger.Info().Str("path", relPath).Int("bytes", len(data)).Msg("Artifact saved")
	return relPath, nil
}

// Delete removes the file at the given relative path. A missing file is
// treated as a successful delete so the operation stays idempotent.
func (ls *LocalStorage) Delete(relPath string) error {
	if relPath == "" {
		return nil
	}
	clean, err := ls.resolve(relPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(clean); os.IsNotExist(err) {
		logger.Warn().Str("path", clean).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(clean); err != nil {
		logger.Error().Err(err).Str("path", clean).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", clean).Msg("File deleted")
	return nil
}

// FullPath returns the absolute filesystem path for a stored relative path
func (ls *LocalStorage) FullPath(relPath string) string {
	clean, err := ls.resolve(relPath)
	if err != nil {
		return ""
	}
	return clean
}

// BasePath returns the storage root, used for static file serving
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// resolve joins relPath under basePath and rejects traversal outside it
func (ls *LocalStorage) resolve(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage path: %s", relPath)
	}
	return filepath.Join(ls.basePath, clean), nil
}
