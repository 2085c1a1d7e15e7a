package models

import "time"

// SettingsRecord is a persisted presentation document
type SettingsRecord struct {
	ID            string                `json:"id"`
	ThemeName     string                `json:"themeName"`
	SlideSizeName string                `json:"slideSizeName"`
	SlideCount    int                   `json:"slideCount"`
	Settings      *PresentationSettings `json:"settings,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
