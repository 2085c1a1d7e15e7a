package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ppttheme/internal/models"
	"ppttheme/internal/services"
)

// PresentationHandler handles HTTP requests for saved presentation settings
type PresentationHandler struct {
	settings *services.SettingsService
	exports  *services.ExportStore
	logger   *zap.Logger
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(settings *services.SettingsService, exports *services.ExportStore, logger *zap.Logger) *PresentationHandler {
	return &PresentationHandler{
		settings: settings,
		exports:  exports,
		logger:   logger,
	}
}

// SaveSettingsData carries the id of a stored document
type SaveSettingsData struct {
	ID string `json:"id"`
}

// SaveSettingsResponse represents the acknowledgment of a save
type SaveSettingsResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Errors  []services.FieldError `json:"errors,omitempty"`
	Data    *SaveSettingsData     `json:"data,omitempty"`
}

// SaveSettings validates and stores a presentation document
// POST /api/ppttheme/settings
func (h *PresentationHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var doc models.PresentationSettings
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	record, err := h.settings.Save(&doc)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, SaveSettingsResponse{
			Success: false,
			Message: "Invalid presentation settings",
			Errors:  verr.Fields,
		})
		return
	}
	if err != nil {
		h.logger.Error("Failed to save settings", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, SaveSettingsResponse{
		Success: true,
		Message: "Settings saved",
		Data:    &SaveSettingsData{ID: record.ID},
	})
}

// ListSettings returns summaries of every saved document
// GET /api/ppttheme/settings
func (h *PresentationHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	records, err := h.settings.List()
	if err != nil {
		h.logger.Error("Failed to list settings", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*models.SettingsRecord{}
	}

	writeJSON(w, http.StatusOK, records)
}

// GetSettings returns a saved document
// GET /api/ppttheme/settings/{id}
func (h *PresentationHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	record, err := h.settings.Get(id)
	if errors.Is(err, services.ErrSettingsNotFound) {
		http.Error(w, "Settings not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get settings", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// DeleteSettings removes a saved document and its exports
// DELETE /api/ppttheme/settings/{id}
func (h *PresentationHandler) DeleteSettings(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.settings.Delete(id)
	if errors.Is(err, services.ErrSettingsNotFound) {
		http.Error(w, "Settings not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to delete settings", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.exports.RemoveArtifacts(id); err != nil {
		h.logger.Warn("Failed to remove exports", zap.String("id", id), zap.Error(err))
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportSettings renders a saved document and returns it as a download
// GET /api/ppttheme/settings/{id}/export?format=json|pptx
func (h *PresentationHandler) ExportSettings(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	format := models.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = models.ExportJSON
	}
	if format != models.ExportJSON && format != models.ExportPPTX {
		http.Error(w, "format must be json or pptx", http.StatusBadRequest)
		return
	}

	record, err := h.settings.Get(id)
	if errors.Is(err, services.ErrSettingsNotFound) {
		http.Error(w, "Settings not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to get settings", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data, err := services.RenderDocument(record.Settings, format)
	if err != nil {
		h.logger.Error("Failed to render export", zap.String("id", id), zap.String("format", string(format)), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := h.exports.SaveArtifact(id, format, data); err != nil {
		h.logger.Error("Failed to store export", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	w.Write(data)
}

// ListExports returns the artifacts exported for a saved document
// GET /api/ppttheme/settings/{id}/exports
func (h *PresentationHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	artifacts, found := h.exports.FindArtifacts(id)
	if !found {
		artifacts = []models.ExportArtifact{}
	}

	writeJSON(w, http.StatusOK, artifacts)
}

// DownloadExport returns a previously exported file without rendering again
// GET /api/ppttheme/settings/{id}/exports/{format}
func (h *PresentationHandler) DownloadExport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	format := models.ExportFormat(vars["format"])

	data, err := h.exports.ReadArtifact(id, format)
	if errors.Is(err, services.ErrSettingsNotFound) {
		http.Error(w, "Export not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("Failed to read export", zap.String("id", id), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
