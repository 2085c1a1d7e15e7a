package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ppttheme/internal/models"
)

// ExportStore keeps exported presentation files on disk and indexes them in
// exports.json
type ExportStore struct {
	mu       sync.RWMutex
	filePath string
	dataPath string
	data     *models.ExportsFile
	logger   *zap.Logger
}

// NewExportStore creates a new export store and loads its index
func NewExportStore(dataPath string, logger *zap.Logger) (*ExportStore, error) {
	store := &ExportStore{
		filePath: filepath.Join(dataPath, "exports.json"),
		dataPath: dataPath,
		data: &models.ExportsFile{
			Exports: make(map[string]*models.ExportRecord),
		},
		logger: logger,
	}

	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load exports: %w", err)
	}

	return store, nil
}

// Load reads exports.json or keeps an empty index if the file doesn't exist
func (s *ExportStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		s.logger.Info("Exports index not found, starting empty", zap.String("path", s.filePath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read exports file: %w", err)
	}

	var file models.ExportsFile
	if err := json.Unmarshal(data, &file); err != nil {
		// A corrupt index only loses the listing; artifacts stay on disk.
		s.logger.Warn("Failed to parse exports.json, using empty index", zap.Error(err))
		return nil
	}
	if file.Exports == nil {
		file.Exports = make(map[string]*models.ExportRecord)
	}

	s.data = &file
	s.logger.Info("Loaded exports index", zap.Int("documents", len(s.data.Exports)), zap.String("path", s.filePath))
	return nil
}

// save atomically writes exports.json (temp file → rename).
// Must be called with lock held.
func (s *ExportStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal exports: %w", err)
	}
	return writeFileAtomic(s.filePath, data)
}

// writeFileAtomic writes data to a temp file, syncs it and renames it over
// path. Each call gets its own temp file, so concurrent writers of the same
// path do not clobber each other; the last rename wins.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to open temp file: %w", err)
	}
	tempPath := file.Name()
	fail := func(format string, err error) error {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf(format, err)
	}

	if _, err := file.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := file.Chmod(0644); err != nil {
		return fail("failed to chmod temp file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// checkSettingsID rejects ids that would escape the exports directory
func checkSettingsID(settingsID string) error {
	if settingsID == "" {
		return fmt.Errorf("settingsID is required")
	}
	if settingsID == "." || settingsID == ".." || strings.ContainsAny(settingsID, `/\`) {
		return fmt.Errorf("%w: settingsID %q", ErrInvalidValue, settingsID)
	}
	return nil
}

// SaveArtifact writes an exported file for a settings document and records
// it in the index. The returned artifact path is relative to the data path.
func (s *ExportStore) SaveArtifact(settingsID string, format models.ExportFormat, data []byte) (*models.ExportArtifact, error) {
	if err := checkSettingsID(settingsID); err != nil {
		return nil, err
	}
	if format != models.ExportJSON && format != models.ExportPPTX {
		return nil, fmt.Errorf("%w: export format %q", ErrInvalidValue, format)
	}

	// exports/{settingsID}/presentation.{format}
	relativePath := filepath.Join("exports", settingsID, format.FileName())
	if err := writeFileAtomic(filepath.Join(s.dataPath, relativePath), data); err != nil {
		return nil, fmt.Errorf("failed to write artifact: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, exists := s.data.Exports[settingsID]
	if !exists {
		record = &models.ExportRecord{
			SettingsID: settingsID,
			Artifacts:  make(map[models.ExportFormat]*models.ExportArtifact),
		}
		s.data.Exports[settingsID] = record
	}

	artifact := &models.ExportArtifact{
		Format:    format,
		Path:      relativePath,
		Size:      len(data),
		CreatedAt: time.Now().UTC(),
	}
	record.Artifacts[format] = artifact

	if err := s.save(); err != nil {
		return nil, fmt.Errorf("failed to save after writing artifact: %w", err)
	}

	s.logger.Info("Export written",
		zap.String("settingsId", settingsID),
		zap.String("format", string(format)),
		zap.String("path", relativePath))
	copied := *artifact
	return &copied, nil
}

// FindArtifacts returns the artifacts recorded for a settings document
func (s *ExportStore) FindArtifacts(settingsID string) ([]models.ExportArtifact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.data.Exports[settingsID]
	if !exists || len(record.Artifacts) == 0 {
		return nil, false
	}

	out := make([]models.ExportArtifact, 0, len(record.Artifacts))
	for _, format := range []models.ExportFormat{models.ExportJSON, models.ExportPPTX} {
		if a, ok := record.Artifacts[format]; ok {
			out = append(out, *a)
		}
	}
	return out, true
}

// ReadArtifact returns the bytes of a recorded artifact
func (s *ExportStore) ReadArtifact(settingsID string, format models.ExportFormat) ([]byte, error) {
	s.mu.RLock()
	record, exists := s.data.Exports[settingsID]
	var artifact *models.ExportArtifact
	if exists {
		artifact = record.Artifacts[format]
	}
	s.mu.RUnlock()

	if artifact == nil {
		return nil, fmt.Errorf("%w: no %s export for %s", ErrSettingsNotFound, format, settingsID)
	}
	data, err := os.ReadFile(filepath.Join(s.dataPath, artifact.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// RemoveArtifacts deletes every artifact of a settings document
func (s *ExportStore) RemoveArtifacts(settingsID string) error {
	if err := checkSettingsID(settingsID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data.Exports[settingsID]; !exists {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(s.dataPath, "exports", settingsID)); err != nil {
		return fmt.Errorf("failed to remove artifacts: %w", err)
	}
	delete(s.data.Exports, settingsID)

	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save after removing artifacts: %w", err)
	}
	return nil
}
