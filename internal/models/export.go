package models

import "time"

// ExportFormat is the file format of an exported document
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportPPTX ExportFormat = "pptx"
)

// FileName is the download name of the artifact
func (f ExportFormat) FileName() string {
	return "presentation." + string(f)
}

// ContentType is the MIME type of the artifact
func (f ExportFormat) ContentType() string {
	if f == ExportPPTX {
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	}
	return "application/json"
}

// ExportArtifact describes one exported file on disk
type ExportArtifact struct {
	Format    ExportFormat `json:"format"`
	Path      string       `json:"path"`
	Size      int          `json:"size"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ExportRecord lists the artifacts exported for one settings document
type ExportRecord struct {
	SettingsID string                           `json:"settingsId"`
	Artifacts  map[ExportFormat]*ExportArtifact `json:"artifacts"`
}

// ExportsFile represents the root structure of exports.json
type ExportsFile struct {
	Exports map[string]*ExportRecord `json:"exports"`
}
