package services

import (
	"fmt"

	"ppttheme/internal/models"
)

// ValidateSettings checks a document for structural completeness before it
// is persisted. Every failing field is reported in a *ValidationError.
func ValidateSettings(doc *models.PresentationSettings) error {
	var fields []FieldError
	fail := func(field, reason string) {
		fields = append(fields, FieldError{Field: field, Reason: reason})
	}

	if doc == nil {
		fail("settings", "is required")
		return &ValidationError{Fields: fields}
	}

	if doc.Theme == nil {
		fail("theme", "is required")
	}
	if doc.SlideSize == nil {
		fail("slideSize", "is required")
	}
	if doc.Slides == nil {
		fail("slides", "is required")
	} else if len(doc.Slides) == 0 {
		fail("slides", "must not be empty")
	}

	if t := doc.Theme; t != nil {
		requireText(fail, "theme.name", t.Name)
		requireText(fail, "theme.background", t.Background)
		requireText(fail, "theme.titleColor", t.TitleColor)
		requireText(fail, "theme.contentColor", t.ContentColor)
	}

	if s := doc.SlideSize; s != nil {
		requireText(fail, "slideSize.width", s.Width)
		requireText(fail, "slideSize.height", s.Height)
		requireText(fail, "slideSize.name", s.Name)
	}

	if doc.Fonts == nil {
		fail("fonts", "is required")
	} else {
		requireText(fail, "fonts.titleFont", doc.Fonts.TitleFont)
		requireText(fail, "fonts.bodyFont", doc.Fonts.BodyFont)
	}

	for i, slide := range doc.Slides {
		prefix := fmt.Sprintf("slides[%d]", i)
		if slide.ID <= 0 {
			fail(prefix+".id", "must be a positive number")
		}
		requireText(fail, prefix+".background", slide.Background)
		requireText(fail, prefix+".titleColor", slide.TitleColor)
		requireText(fail, prefix+".contentColor", slide.ContentColor)
		for j, sub := range slide.SubSlides {
			requireText(fail, fmt.Sprintf("%s.subSlides[%d].id", prefix, j), sub.ID)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// IsValidSettings reports whether doc passes ValidateSettings
func IsValidSettings(doc *models.PresentationSettings) bool {
	return ValidateSettings(doc) == nil
}

func requireText(fail func(field, reason string), field, value string) {
	if value == "" {
		fail(field, "must not be empty")
	}
}
