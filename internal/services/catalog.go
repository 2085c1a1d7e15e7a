package services

import (
	"fmt"
	"os"

	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"

	"ppttheme/internal/models"
)

// ThemeCatalog holds the colour presets of an edit session. It starts with the
// built-in themes and only grows; duplicate names are kept.
type ThemeCatalog struct {
	themes []models.Theme
}

// NewThemeCatalog creates a catalog seeded with the built-in themes
func NewThemeCatalog(extra ...models.Theme) *ThemeCatalog {
	c := &ThemeCatalog{themes: models.BuiltinThemes()}
	for _, t := range extra {
		c.Add(t)
	}
	return c
}

// Add appends a theme
func (c *ThemeCatalog) Add(theme models.Theme) {
	c.themes = append(c.themes, theme.Clone())
}

// All returns a copy of every theme in insertion order
func (c *ThemeCatalog) All() []models.Theme {
	out := make([]models.Theme, len(c.themes))
	for i, t := range c.themes {
		out[i] = t.Clone()
	}
	return out
}

// Find returns the most recently added theme with the given name
func (c *ThemeCatalog) Find(name string) (models.Theme, bool) {
	for i := len(c.themes) - 1; i >= 0; i-- {
		if c.themes[i].Name == name {
			return c.themes[i].Clone(), true
		}
	}
	return models.Theme{}, false
}

// Len returns the number of themes
func (c *ThemeCatalog) Len() int {
	return len(c.themes)
}

// ThemeFromColors projects a full palette onto the slide colour triple
func ThemeFromColors(colors models.ThemeColors, name string) models.Theme {
	return models.Theme{
		Name:         name,
		Background:   colors.TextLight1,
		TitleColor:   colors.TextDark1,
		ContentColor: colors.TextDark2,
		Colors:       &colors,
	}
}

// FontCatalog holds the saved font pairs of an edit session
type FontCatalog struct {
	presets []models.FontPreset
}

// NewFontCatalog creates an empty font catalog
func NewFontCatalog() *FontCatalog {
	return &FontCatalog{}
}

// Save appends a preset under a freshly generated id and returns it
func (c *FontCatalog) Save(preset models.FontPreset) models.FontPreset {
	preset.ID = newID("theme-fonts")
	c.presets = append(c.presets, preset)
	return preset
}

// Update replaces the fonts and name of an existing preset
func (c *FontCatalog) Update(id string, preset models.FontPreset) (models.FontPreset, error) {
	for i := range c.presets {
		if c.presets[i].ID == id {
			preset.ID = id
			c.presets[i] = preset
			return preset, nil
		}
	}
	return models.FontPreset{}, fmt.Errorf("%w: %s", ErrFontPresetNotFound, id)
}

// Delete removes a preset
func (c *FontCatalog) Delete(id string) error {
	for i := range c.presets {
		if c.presets[i].ID == id {
			c.presets = append(c.presets[:i], c.presets[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrFontPresetNotFound, id)
}

// Find returns the preset with the given id
func (c *FontCatalog) Find(id string) (models.FontPreset, bool) {
	for _, p := range c.presets {
		if p.ID == id {
			return p, true
		}
	}
	return models.FontPreset{}, false
}

// All returns a copy of every preset in insertion order
func (c *FontCatalog) All() []models.FontPreset {
	return append([]models.FontPreset(nil), c.presets...)
}

// themesFile is the layout of a theme preset file
type themesFile struct {
	Themes []models.Theme `yaml:"themes"`
}

// LoadThemes reads additional theme presets from a YAML file
func LoadThemes(path string) ([]models.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes file: %w", err)
	}

	var file themesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse themes file: %w", err)
	}

	for i, t := range file.Themes {
		if t.Name == "" || t.Background == "" || t.TitleColor == "" || t.ContentColor == "" {
			return nil, fmt.Errorf("theme %d in %s: name, background, titleColor and contentColor are required", i, path)
		}
	}
	return file.Themes, nil
}

// newID generates a prefixed unique id
func newID(prefix string) string {
	return prefix + "-" + ksuid.New().String()
}
