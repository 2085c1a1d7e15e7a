package services

import (
	"errors"
	"fmt"
	"strings"

	"ppttheme/internal/models"
)

var (
	ErrOutOfRange         = errors.New("index out of range")
	ErrSlideNotFound      = errors.New("slide not found")
	ErrUnknownField       = errors.New("unknown field")
	ErrInvalidValue       = errors.New("invalid value")
	ErrUnknownChartKind   = models.ErrUnknownChartKind
	ErrUnknownTheme       = errors.New("unknown theme")
	ErrUnknownSlideSize   = errors.New("unknown slide size")
	ErrFontPresetNotFound = errors.New("font preset not found")
	ErrSaveInFlight       = errors.New("save already in flight")
	ErrSettingsNotFound   = errors.New("settings not found")
	ErrSessionNotFound    = errors.New("session not found")
)

// FieldError names one failing field of a document
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Reason
}

// ValidationError is returned when a document fails validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid presentation settings: " + strings.Join(parts, "; ")
}

// TransportError is returned when the settings endpoint cannot be reached or
// answers with a non-2xx status
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to save settings: HTTP error status %d", e.StatusCode)
	}
	return fmt.Sprintf("failed to save settings: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func outOfRange(what string, index, length int) error {
	return fmt.Errorf("%w: %s %d (have %d)", ErrOutOfRange, what, index, length)
}
