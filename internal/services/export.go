package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"ppttheme/internal/models"
)

// Slide geometry in EMU on the default 16:9 layout
const (
	emuPerInch = 914400

	exportSlideWidth    = int64(10.0 * emuPerInch)
	exportSlideHeight   = int64(5.625 * emuPerInch)
	exportMargin        = int64(0.4 * emuPerInch)
	exportContentWidth  = int64(9.2 * emuPerInch)
	exportLogoSize      = int64(0.8 * emuPerInch)
	exportFontTitle     = 28
	exportFontBody      = 16
	exportFontChartHead = 14
	exportFontChartCell = 11
)

// RenderDocument encodes a document in the requested export format
func RenderDocument(doc *models.PresentationSettings, format models.ExportFormat) ([]byte, error) {
	switch format {
	case models.ExportJSON:
		data, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal presentation: %w", err)
		}
		return data, nil
	case models.ExportPPTX:
		return RenderPPTX(doc)
	}
	return nil, fmt.Errorf("%w: export format %q", ErrInvalidValue, format)
}

// RenderPPTX builds a PowerPoint deck with one page per sub-slide. A slide
// without sub-slides still produces one page carrying its background.
func RenderPPTX(doc *models.PresentationSettings) ([]byte, error) {
	if err := ValidateSettings(doc); err != nil {
		return nil, err
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = doc.Theme.Name + " presentation"
	p.GetDocumentProperties().Creator = "ppttheme"

	first := true
	nextPage := func() *ppt.Slide {
		if first {
			first = false
			return p.GetActiveSlide()
		}
		return p.CreateSlide()
	}

	for _, slide := range doc.Slides {
		if len(slide.SubSlides) == 0 {
			renderPage(nextPage(), slide, nil)
			continue
		}
		for i := range slide.SubSlides {
			renderPage(nextPage(), slide, &slide.SubSlides[i])
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPage(page *ppt.Slide, slide models.Slide, sub *models.SubSlide) {
	bg := page.CreateRichTextShape()
	bg.SetOffsetX(0).SetOffsetY(0)
	bg.SetWidth(exportSlideWidth).SetHeight(exportSlideHeight)
	bg.SetFill(ppt.NewFill().SetSolid(ppt.NewColor(toARGB(slide.Background, "FFFFFFFF"))))

	titleARGB := toARGB(slide.TitleColor, "FF000000")
	contentARGB := toARGB(slide.ContentColor, "FF333333")

	top := int64(0.4 * emuPerInch)
	if slide.Logo != "" && logoAnchor(slide).IsTop() {
		top += exportLogoSize
	}

	if sub != nil {
		titleShape := page.CreateRichTextShape()
		titleShape.SetOffsetX(exportMargin).SetOffsetY(top)
		titleShape.SetWidth(exportContentWidth).SetHeight(int64(0.8 * emuPerInch))
		tr := titleShape.CreateTextRun(sub.Title)
		tr.GetFont().SetSize(exportFontTitle).SetBold(true).SetColor(ppt.NewColor(titleARGB))

		body := page.CreateRichTextShape()
		body.SetOffsetX(exportMargin).SetOffsetY(top + int64(0.9*emuPerInch))
		body.SetWidth(exportContentWidth).SetHeight(int64(1.4 * emuPerInch))
		for i, line := range strings.Split(sub.Content, "\n") {
			if i > 0 {
				body.CreateParagraph()
			}
			run := body.CreateTextRun(line)
			run.GetFont().SetSize(exportFontBody).SetColor(ppt.NewColor(contentARGB))
		}

		if sub.Chart != nil {
			renderChartTable(page, sub.Chart, top+int64(2.4*emuPerInch), titleARGB, contentARGB)
		}
	}

	if slide.Logo != "" {
		renderLogo(page, slide)
	}
}

// renderChartTable lists the chart data as text; drawing the chart itself is
// left to the presentation viewer.
func renderChartTable(page *ppt.Slide, chart *models.ChartRecord, top int64, headARGB, cellARGB string) {
	shape := page.CreateRichTextShape()
	shape.SetOffsetX(exportMargin).SetOffsetY(top)
	shape.SetWidth(exportContentWidth).SetHeight(int64(2.0 * emuPerInch))

	head := shape.CreateTextRun(chart.Title)
	head.GetFont().SetSize(exportFontChartHead).SetBold(true).SetColor(ppt.NewColor(headARGB))

	cols := chart.Columns()
	shape.CreateParagraph()
	header := shape.CreateTextRun(strings.Join(cols, " | "))
	header.GetFont().SetSize(exportFontChartCell).SetBold(true).SetColor(ppt.NewColor(cellARGB))

	for _, row := range chart.Rows {
		cells := []string{row.Name}
		for _, col := range cols[1:] {
			cells = append(cells, fmt.Sprintf("%g", row.Values[col]))
		}
		shape.CreateParagraph()
		run := shape.CreateTextRun(strings.Join(cells, " | "))
		run.GetFont().SetSize(exportFontChartCell).SetColor(ppt.NewColor(cellARGB))
	}
}

func renderLogo(page *ppt.Slide, slide models.Slide) {
	data, mimeType, err := decodeDataURL(slide.Logo)
	if err != nil {
		return
	}

	x, y := logoOffset(logoAnchor(slide))

	img := page.CreateDrawingShape()
	img.SetImageData(data, mimeType)
	img.SetOffsetX(x).SetOffsetY(y)
	img.SetWidth(exportLogoSize).SetHeight(exportLogoSize)
}

func logoAnchor(slide models.Slide) models.LogoPosition {
	if slide.LogoPosition == "" {
		return models.LogoTopRight
	}
	return slide.LogoPosition
}

// logoOffset maps an anchor to the logo's top-left corner
func logoOffset(pos models.LogoPosition) (int64, int64) {
	x := exportMargin
	switch pos {
	case models.LogoTopCenter, models.LogoBottomCenter:
		x = (exportSlideWidth - exportLogoSize) / 2
	case models.LogoTopRight, models.LogoBottomRight:
		x = exportSlideWidth - exportMargin - exportLogoSize
	}
	y := int64(0.2 * emuPerInch)
	if !pos.IsTop() {
		y = exportSlideHeight - int64(0.2*emuPerInch) - exportLogoSize
	}
	return x, y
}

// decodeDataURL splits a base64 data URL into its payload and MIME type
func decodeDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", fmt.Errorf("%w: logo is not a data URL", ErrInvalidValue)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("%w: logo data URL is not base64", ErrInvalidValue)
	}

	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = "image/png"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, mimeType, nil
}

// toARGB converts "#rgb" or "#rrggbb" to the opaque ARGB hex GoPPT expects
func toARGB(hex, fallback string) string {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return fallback
	}
	for _, c := range h {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return fallback
		}
	}
	return "FF" + strings.ToUpper(h)
}
