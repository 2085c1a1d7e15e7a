package handlers

import (
	"net/http"

	"ppttheme/internal/models"
	"ppttheme/internal/services"
)

// CatalogHandler serves the read-only preset catalogs
type CatalogHandler struct {
	themes *services.ThemeCatalog
}

// NewCatalogHandler creates a catalog handler offering the built-in themes
// plus the given extra themes
func NewCatalogHandler(extra ...models.Theme) *CatalogHandler {
	return &CatalogHandler{
		themes: services.NewThemeCatalog(extra...),
	}
}

// FontsResponse lists the offered fonts and the default pair
type FontsResponse struct {
	Fonts    []string     `json:"fonts"`
	Defaults models.Fonts `json:"defaults"`
}

// ChartTemplate is a chart kind with the dataset a new chart starts from
type ChartTemplate struct {
	Kind  models.ChartKind  `json:"type"`
	Label string            `json:"label"`
	Data  []models.ChartRow `json:"data"`
}

// ListThemes returns every theme preset
// GET /api/ppttheme/themes
func (h *CatalogHandler) ListThemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.themes.All())
}

// ListSlideSizes returns the canvas size catalog
// GET /api/ppttheme/slide-sizes
func (h *CatalogHandler) ListSlideSizes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.SlideSizes())
}

// ListFonts returns the font list
// GET /api/ppttheme/fonts
func (h *CatalogHandler) ListFonts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, FontsResponse{
		Fonts:    models.CommonFonts,
		Defaults: models.Fonts{TitleFont: models.DefaultTitleFont, BodyFont: models.DefaultBodyFont},
	})
}

// ListCharts returns the chart kinds with their example data
// GET /api/ppttheme/charts
func (h *CatalogHandler) ListCharts(w http.ResponseWriter, r *http.Request) {
	templates := make([]ChartTemplate, 0, len(models.ChartKinds))
	for _, kind := range models.ChartKinds {
		templates = append(templates, ChartTemplate{
			Kind:  kind,
			Label: kind.Label(),
			Data:  models.ExampleChartRows(kind),
		})
	}
	writeJSON(w, http.StatusOK, templates)
}
