package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ppttheme/internal/models"
)

// SettingsService persists validated presentation documents
type SettingsService struct {
	database *sql.DB
	logger   *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(database *sql.DB, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		database: database,
		logger:   logger,
	}
}

// Save validates and stores a document under a new id
func (ss *SettingsService) Save(doc *models.PresentationSettings) (*models.SettingsRecord, error) {
	if err := ValidateSettings(doc); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	now := time.Now().UTC()
	record := &models.SettingsRecord{
		ID:            uuid.NewString(),
		ThemeName:     doc.Theme.Name,
		SlideSizeName: doc.SlideSize.Name,
		SlideCount:    len(doc.Slides),
		Settings:      doc.Clone(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	query := `INSERT INTO presentation_settings
		(id, theme_name, slide_size_name, slide_count, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = ss.database.Exec(query, record.ID, record.ThemeName, record.SlideSizeName,
		record.SlideCount, string(payload), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert settings: %w", err)
	}

	ss.logger.Info("Settings saved",
		zap.String("id", record.ID),
		zap.String("theme", record.ThemeName),
		zap.Int("slides", record.SlideCount))
	return record, nil
}

// Get returns a stored document by id
func (ss *SettingsService) Get(id string) (*models.SettingsRecord, error) {
	query := `SELECT id, theme_name, slide_size_name, slide_count, payload, created_at, updated_at
		FROM presentation_settings WHERE id = ?`

	var record models.SettingsRecord
	var payload string
	err := ss.database.QueryRow(query, id).Scan(
		&record.ID,
		&record.ThemeName,
		&record.SlideSizeName,
		&record.SlideCount,
		&payload,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSettingsNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}

	var doc models.PresentationSettings
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode settings %s: %w", id, err)
	}
	record.Settings = &doc

	return &record, nil
}

// List returns summaries of every stored document, newest first
func (ss *SettingsService) List() ([]*models.SettingsRecord, error) {
	query := `SELECT id, theme_name, slide_size_name, slide_count, created_at, updated_at
		FROM presentation_settings ORDER BY created_at DESC, rowid DESC`

	rows, err := ss.database.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var records []*models.SettingsRecord
	for rows.Next() {
		var record models.SettingsRecord
		err := rows.Scan(
			&record.ID,
			&record.ThemeName,
			&record.SlideSizeName,
			&record.SlideCount,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settings: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// Delete removes a stored document
func (ss *SettingsService) Delete(id string) error {
	query := `DELETE FROM presentation_settings WHERE id = ?`
	result, err := ss.database.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrSettingsNotFound, id)
	}

	ss.logger.Info("Settings deleted", zap.String("id", id))
	return nil
}
