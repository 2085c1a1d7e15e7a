package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ppttheme/internal/models"
)

// Direction is a navigation step through the slide list
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// SlideField names a single editable field of a slide
type SlideField string

const (
	FieldBackground   SlideField = "background"
	FieldTitleColor   SlideField = "titleColor"
	FieldContentColor SlideField = "contentColor"
	FieldTitleFont    SlideField = "titleFont"
	FieldBodyFont     SlideField = "bodyFont"
	FieldLogo         SlideField = "logo"
	FieldLogoPosition SlideField = "logoPosition"
	// FieldTitle and FieldContent address the slide's first sub-slide
	FieldTitle   SlideField = "title"
	FieldContent SlideField = "content"
)

// ParseSlideField converts a raw field name
func ParseSlideField(s string) (SlideField, error) {
	f := SlideField(s)
	switch f {
	case FieldBackground, FieldTitleColor, FieldContentColor,
		FieldTitleFont, FieldBodyFont, FieldLogo, FieldLogoPosition,
		FieldTitle, FieldContent:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// SubSlidePatch lists the sub-slide fields to replace; nil fields are kept
type SubSlidePatch struct {
	Title      *string
	Content    *string
	Chart      *models.ChartRecord
	ClearChart bool
}

// SlideColors is the colour section of the slide settings form
type SlideColors struct {
	Background   string `json:"background"`
	TitleColor   string `json:"titleColor"`
	ContentColor string `json:"contentColor"`
}

// SlideGeneral is the general section of the slide settings form
type SlideGeneral struct {
	SlideSize    models.SlideSizeKind `json:"slideSize"`
	CustomWidth  int                  `json:"customWidth,omitempty"`
	CustomHeight int                  `json:"customHeight,omitempty"`
	Logo         string               `json:"logo,omitempty"`
	LogoPosition models.LogoPosition  `json:"logoPosition"`
}

// SubSlideText is the title/content pair edited in the slide settings form
type SubSlideText struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SlideSettings is the full slide settings form, used to create a slide or to
// edit one in a single step
type SlideSettings struct {
	Colors    SlideColors    `json:"colors"`
	Fonts     models.Fonts   `json:"fonts"`
	General   SlideGeneral   `json:"general"`
	SubSlides []SubSlideText `json:"subSlides"`
}

// EditCursor marks the one field currently in inline-edit mode
type EditCursor struct {
	SlideID int        `json:"slideId"`
	Field   SlideField `json:"field"`
}

// ChangeFunc receives a fresh document snapshot after every change
type ChangeFunc func(*models.PresentationSettings)

// Option configures an EditSession
type Option func(*EditSession)

// WithObserver registers the change observer
func WithObserver(fn ChangeFunc) Option {
	return func(s *EditSession) { s.observer = fn }
}

// WithThemes adds presets to the session's theme catalog
func WithThemes(themes ...models.Theme) Option {
	return func(s *EditSession) {
		for _, t := range themes {
			s.themes.Add(t)
		}
	}
}

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *EditSession) { s.logger = logger }
}

// EditSession is the in-memory editor state and its mutation operations.
// It is owned by a single caller and is not safe for concurrent use.
type EditSession struct {
	slides      []models.Slide
	current     int
	theme       models.Theme
	size        models.SlideSize
	cursor      *EditCursor
	themes      *ThemeCatalog
	fonts       *FontCatalog
	nextSlideID int
	observer    ChangeFunc
	logger      *zap.Logger
}

// NewEditSession creates a session holding one seed slide in the default theme
func NewEditSession(opts ...Option) *EditSession {
	s := &EditSession{
		themes:      NewThemeCatalog(),
		fonts:       NewFontCatalog(),
		size:        models.SlideSizes()[0],
		nextSlideID: 1,
		logger:      zap.NewNop(),
	}
	s.theme = s.themes.All()[0]
	for _, opt := range opts {
		opt(s)
	}

	s.slides = []models.Slide{s.newSlide("Title 1", "Your content here...")}
	return s
}

// newSlide builds a slide styled from the current theme
func (s *EditSession) newSlide(title, content string) models.Slide {
	slide := models.Slide{
		ID:           s.nextSlideID,
		Background:   s.theme.Background,
		TitleColor:   s.theme.TitleColor,
		ContentColor: s.theme.ContentColor,
		SubSlides: []models.SubSlide{{
			ID:      newID("sub"),
			Title:   title,
			Content: content,
		}},
	}
	s.nextSlideID++
	return slide
}

// SetObserver replaces the change observer
func (s *EditSession) SetObserver(fn ChangeFunc) {
	s.observer = fn
}

func (s *EditSession) notify() {
	if s.observer != nil {
		s.observer(s.Snapshot())
	}
}

// CurrentIndex returns the active slide index
func (s *EditSession) CurrentIndex() int {
	return s.current
}

// SlideCount returns the number of slides
func (s *EditSession) SlideCount() int {
	return len(s.slides)
}

// CurrentTheme returns the active theme
func (s *EditSession) CurrentTheme() models.Theme {
	return s.theme.Clone()
}

// Themes returns the theme catalog
func (s *EditSession) Themes() *ThemeCatalog {
	return s.themes
}

// Fonts returns the font catalog
func (s *EditSession) Fonts() *FontCatalog {
	return s.fonts
}

// ThemeColors returns the active palette, falling back to the default one
func (s *EditSession) ThemeColors() models.ThemeColors {
	if s.theme.Colors != nil {
		return *s.theme.Colors
	}
	return models.DefaultThemeColors
}

// AddSlide appends a slide coloured from the current theme and makes it active
func (s *EditSession) AddSlide() {
	n := len(s.slides) + 1
	slide := s.newSlide(fmt.Sprintf("Title %d", n), "New slide content...")
	if len(s.slides) > 0 {
		slide.TitleFont = s.slides[0].TitleFont
		slide.BodyFont = s.slides[0].BodyFont
	}
	s.slides = append(s.slides, slide)
	s.current = len(s.slides) - 1

	s.logger.Debug("slide added", zap.Int("slideId", slide.ID), zap.Int("count", len(s.slides)))
	s.notify()
}

// Navigate moves the active index one step, stopping at either end
func (s *EditSession) Navigate(dir Direction) error {
	prev := s.current
	switch dir {
	case DirectionPrev:
		if s.current > 0 {
			s.current--
		}
	case DirectionNext:
		if s.current < len(s.slides)-1 {
			s.current++
		}
	default:
		return fmt.Errorf("%w: direction %q", ErrInvalidValue, dir)
	}

	if s.current != prev {
		s.notify()
	}
	return nil
}

// Select makes the slide at index active
func (s *EditSession) Select(index int) error {
	if index < 0 || index >= len(s.slides) {
		return outOfRange("slide", index, len(s.slides))
	}
	if index != s.current {
		s.current = index
		s.notify()
	}
	return nil
}

// ApplyTheme makes theme current and overwrites the colours of every slide.
// Per-slide fonts are left alone.
func (s *EditSession) ApplyTheme(theme models.Theme) {
	s.theme = theme.Clone()
	for i := range s.slides {
		s.slides[i].Background = theme.Background
		s.slides[i].TitleColor = theme.TitleColor
		s.slides[i].ContentColor = theme.ContentColor
	}

	s.logger.Debug("theme applied", zap.String("theme", theme.Name), zap.Int("slides", len(s.slides)))
	s.notify()
}

// ApplyThemeByName applies a theme from the catalog
func (s *EditSession) ApplyThemeByName(name string) error {
	theme, ok := s.themes.Find(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	s.ApplyTheme(theme)
	return nil
}

// SaveTheme adds a theme derived from a full palette to the catalog and
// applies it
func (s *EditSession) SaveTheme(colors models.ThemeColors, name string) models.Theme {
	theme := ThemeFromColors(colors, name)
	s.themes.Add(theme)
	s.ApplyTheme(theme)
	return theme
}

// SelectSlideSize picks the document canvas size from the size catalog
func (s *EditSession) SelectSlideSize(name string) error {
	size, ok := models.FindSlideSize(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSlideSize, name)
	}
	if size != s.size {
		s.size = size
		s.notify()
	}
	return nil
}

func (s *EditSession) slideIndexByID(id int) (int, error) {
	for i := range s.slides {
		if s.slides[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: id %d", ErrSlideNotFound, id)
}

// UpdateSlideField replaces one field of the slide with the given id.
// Title and content are written to the slide's first sub-slide.
func (s *EditSession) UpdateSlideField(slideID int, field SlideField, value string) error {
	i, err := s.slideIndexByID(slideID)
	if err != nil {
		return err
	}
	slide := &s.slides[i]

	switch field {
	case FieldBackground:
		slide.Background = value
	case FieldTitleColor:
		slide.TitleColor = value
	case FieldContentColor:
		slide.ContentColor = value
	case FieldTitleFont:
		slide.TitleFont = value
	case FieldBodyFont:
		slide.BodyFont = value
	case FieldLogo:
		slide.Logo = value
	case FieldLogoPosition:
		pos := models.LogoPosition(value)
		if value != "" && !pos.Valid() {
			return fmt.Errorf("%w: logo position %q", ErrInvalidValue, value)
		}
		slide.LogoPosition = pos
	case FieldTitle, FieldContent:
		if len(slide.SubSlides) == 0 {
			return outOfRange("sub-slide", 0, 0)
		}
		if field == FieldTitle {
			slide.SubSlides[0].Title = value
		} else {
			slide.SubSlides[0].Content = value
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	s.notify()
	return nil
}

// SetSlideBackground changes the background of the active slide only
func (s *EditSession) SetSlideBackground(color string) {
	if len(s.slides) == 0 {
		return
	}
	s.slides[s.current].Background = color
	s.notify()
}

// SetSlideDimensions sets the per-slide size. Custom sizes need positive
// width and height; the other kinds clear them.
func (s *EditSession) SetSlideDimensions(slideID int, kind models.SlideSizeKind, width, height int) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: slide size %q", ErrInvalidValue, kind)
	}
	if kind == models.SizeCustom && (width <= 0 || height <= 0) {
		return fmt.Errorf("%w: custom size %dx%d", ErrInvalidValue, width, height)
	}
	i, err := s.slideIndexByID(slideID)
	if err != nil {
		return err
	}

	s.slides[i].SlideSize = kind
	if kind == models.SizeCustom {
		s.slides[i].CustomWidth, s.slides[i].CustomHeight = width, height
	} else {
		s.slides[i].CustomWidth, s.slides[i].CustomHeight = 0, 0
	}
	s.notify()
	return nil
}

func (s *EditSession) subSlide(slideIndex, subIndex int) (*models.SubSlide, error) {
	if slideIndex < 0 || slideIndex >= len(s.slides) {
		return nil, outOfRange("slide", slideIndex, len(s.slides))
	}
	subs := s.slides[slideIndex].SubSlides
	if subIndex < 0 || subIndex >= len(subs) {
		return nil, outOfRange("sub-slide", subIndex, len(subs))
	}
	return &subs[subIndex], nil
}

// UpdateSubSlide applies patch to the addressed sub-slide
func (s *EditSession) UpdateSubSlide(slideIndex, subIndex int, patch SubSlidePatch) error {
	sub, err := s.subSlide(slideIndex, subIndex)
	if err != nil {
		return err
	}
	if patch.Chart != nil {
		if err := patch.Chart.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}

	if patch.Title != nil {
		sub.Title = *patch.Title
	}
	if patch.Content != nil {
		sub.Content = *patch.Content
	}
	switch {
	case patch.ClearChart:
		sub.Chart = nil
	case patch.Chart != nil:
		c := patch.Chart.Clone()
		sub.Chart = &c
	}

	s.notify()
	return nil
}

// DeleteSubSlide removes one sub-slide. The parent slide stays even when it
// has no sub-slides left.
func (s *EditSession) DeleteSubSlide(slideIndex, subIndex int) error {
	if _, err := s.subSlide(slideIndex, subIndex); err != nil {
		return err
	}
	subs := s.slides[slideIndex].SubSlides
	s.slides[slideIndex].SubSlides = append(subs[:subIndex:subIndex], subs[subIndex+1:]...)

	s.logger.Debug("sub-slide deleted", zap.Int("slide", slideIndex), zap.Int("subSlide", subIndex))
	s.notify()
	return nil
}

// NewChart seeds a chart of kind with the example dataset
func NewChart(kind models.ChartKind) (*models.ChartRecord, error) {
	k, err := models.ParseChartKind(string(kind))
	if err != nil {
		return nil, err
	}
	return &models.ChartRecord{
		ID:    newID("chart"),
		Kind:  k,
		Title: k.Label() + " Chart",
		Rows:  models.ExampleChartRows(k),
	}, nil
}

// AddChartToActiveSlide appends a sub-slide carrying a freshly seeded chart
func (s *EditSession) AddChartToActiveSlide(kind models.ChartKind) (models.SubSlide, error) {
	chart, err := NewChart(kind)
	if err != nil {
		return models.SubSlide{}, err
	}
	if len(s.slides) == 0 {
		return models.SubSlide{}, outOfRange("slide", s.current, 0)
	}

	slide := &s.slides[s.current]
	sub := models.SubSlide{
		ID:    fmt.Sprintf("%d-%s-%s", s.current, chart.Kind, newID("sub")),
		Title: chart.Title,
		Chart: chart,
	}
	slide.SubSlides = append(slide.SubSlides, sub)

	s.logger.Debug("chart added", zap.String("kind", string(chart.Kind)), zap.Int("slideId", slide.ID))
	s.notify()
	return sub.Clone(), nil
}

func (s *EditSession) chart(slideIndex, subIndex int) (*models.ChartRecord, error) {
	sub, err := s.subSlide(slideIndex, subIndex)
	if err != nil {
		return nil, err
	}
	if sub.Chart == nil {
		return nil, fmt.Errorf("%w: sub-slide %s has no chart", ErrInvalidValue, sub.ID)
	}
	return sub.Chart, nil
}

// AddChartRow appends a zeroed "New Row" to the chart of a sub-slide
func (s *EditSession) AddChartRow(slideIndex, subIndex int) error {
	chart, err := s.chart(slideIndex, subIndex)
	if err != nil {
		return err
	}
	chart.AddRow()
	s.notify()
	return nil
}

// DeleteChartRow removes one row from the chart of a sub-slide
func (s *EditSession) DeleteChartRow(slideIndex, subIndex, row int) error {
	chart, err := s.chart(slideIndex, subIndex)
	if err != nil {
		return err
	}
	if err := chart.DeleteRow(row); err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	s.notify()
	return nil
}

// UpdateChartCell writes one cell of the chart table of a sub-slide
func (s *EditSession) UpdateChartCell(slideIndex, subIndex, row int, column, raw string) error {
	chart, err := s.chart(slideIndex, subIndex)
	if err != nil {
		return err
	}
	if err := chart.SetCell(row, column, raw); err != nil {
		if errors.Is(err, models.ErrRowOutOfRange) {
			return fmt.Errorf("%w: %w", ErrOutOfRange, err)
		}
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	s.notify()
	return nil
}

// ApplyFonts sets the fonts of the active slide only
func (s *EditSession) ApplyFonts(fonts models.Fonts) {
	if len(s.slides) == 0 {
		return
	}
	s.slides[s.current].TitleFont = fonts.TitleFont
	s.slides[s.current].BodyFont = fonts.BodyFont
	s.notify()
}

// SaveFonts adds a font preset to the catalog and applies it
func (s *EditSession) SaveFonts(preset models.FontPreset) models.FontPreset {
	saved := s.fonts.Save(preset)
	s.ApplyFonts(saved.Fonts())
	return saved
}

// UpdateFontPreset renames or refonts a saved preset. Slides that already use
// its fonts keep them.
func (s *EditSession) UpdateFontPreset(id string, preset models.FontPreset) (models.FontPreset, error) {
	return s.fonts.Update(id, preset)
}

// DeleteFontPreset removes a saved preset
func (s *EditSession) DeleteFontPreset(id string) error {
	return s.fonts.Delete(id)
}

// ApplyFontPreset applies a saved font preset to the active slide
func (s *EditSession) ApplyFontPreset(id string) error {
	preset, ok := s.fonts.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrFontPresetNotFound, id)
	}
	s.ApplyFonts(preset.Fonts())
	return nil
}

func (g SlideGeneral) validate() error {
	if g.SlideSize != "" && !g.SlideSize.Valid() {
		return fmt.Errorf("%w: slide size %q", ErrInvalidValue, g.SlideSize)
	}
	if g.SlideSize == models.SizeCustom && (g.CustomWidth <= 0 || g.CustomHeight <= 0) {
		return fmt.Errorf("%w: custom size %dx%d", ErrInvalidValue, g.CustomWidth, g.CustomHeight)
	}
	if g.LogoPosition != "" && !g.LogoPosition.Valid() {
		return fmt.Errorf("%w: logo position %q", ErrInvalidValue, g.LogoPosition)
	}
	return nil
}

// applySettings writes settings onto slide. The sub-slide list is replaced by
// the form's list; sub-slides that keep their id keep their chart.
func applySettings(slide *models.Slide, settings SlideSettings) {
	if settings.Colors.Background != "" {
		slide.Background = settings.Colors.Background
	}
	if settings.Colors.TitleColor != "" {
		slide.TitleColor = settings.Colors.TitleColor
	}
	if settings.Colors.ContentColor != "" {
		slide.ContentColor = settings.Colors.ContentColor
	}
	slide.TitleFont = settings.Fonts.TitleFont
	slide.BodyFont = settings.Fonts.BodyFont

	g := settings.General
	slide.SlideSize = g.SlideSize
	slide.CustomWidth, slide.CustomHeight = 0, 0
	if g.SlideSize == models.SizeCustom {
		slide.CustomWidth, slide.CustomHeight = g.CustomWidth, g.CustomHeight
	}
	slide.Logo = g.Logo
	slide.LogoPosition = g.LogoPosition

	if settings.SubSlides == nil {
		return
	}
	existing := make(map[string]*models.ChartRecord, len(slide.SubSlides))
	for _, sub := range slide.SubSlides {
		existing[sub.ID] = sub.Chart
	}
	subs := make([]models.SubSlide, 0, len(settings.SubSlides))
	for _, text := range settings.SubSlides {
		sub := models.SubSlide{ID: text.ID, Title: text.Title, Content: text.Content}
		if sub.ID == "" {
			sub.ID = newID("new")
		}
		if chart := existing[sub.ID]; chart != nil {
			c := chart.Clone()
			sub.Chart = &c
		}
		subs = append(subs, sub)
	}
	slide.SubSlides = subs
}

// ApplySlideSettings edits a slide from the slide settings form in one step
func (s *EditSession) ApplySlideSettings(slideID int, settings SlideSettings) error {
	if err := settings.General.validate(); err != nil {
		return err
	}
	i, err := s.slideIndexByID(slideID)
	if err != nil {
		return err
	}

	applySettings(&s.slides[i], settings)
	s.notify()
	return nil
}

// CreateSlide appends a slide built from the slide settings form and makes it
// active. Colours missing from the form fall back to the current theme.
func (s *EditSession) CreateSlide(settings SlideSettings) (models.Slide, error) {
	if err := settings.General.validate(); err != nil {
		return models.Slide{}, err
	}

	slide := s.newSlide("", "")
	if len(settings.SubSlides) == 0 {
		settings.SubSlides = []SubSlideText{{ID: slide.SubSlides[0].ID}}
	}
	applySettings(&slide, settings)
	s.slides = append(s.slides, slide)
	s.current = len(s.slides) - 1

	s.logger.Debug("slide created", zap.Int("slideId", slide.ID))
	s.notify()
	return slide.Clone(), nil
}

// StartEdit puts one field into inline-edit mode. Any field already being
// edited is committed first, so at most one cursor exists.
func (s *EditSession) StartEdit(slideID int, field SlideField) error {
	if _, err := ParseSlideField(string(field)); err != nil {
		return err
	}
	if _, err := s.slideIndexByID(slideID); err != nil {
		return err
	}
	s.cursor = &EditCursor{SlideID: slideID, Field: field}
	return nil
}

// CommitEdit leaves inline-edit mode
func (s *EditSession) CommitEdit() {
	s.cursor = nil
}

// EditCursor returns the field in inline-edit mode, if any
func (s *EditSession) EditCursor() (EditCursor, bool) {
	if s.cursor == nil {
		return EditCursor{}, false
	}
	return *s.cursor, true
}

// Snapshot builds a fresh document from the current state. Fonts come from
// the active slide and default to Arial and Calibri.
func (s *EditSession) Snapshot() *models.PresentationSettings {
	fonts := models.Fonts{TitleFont: models.DefaultTitleFont, BodyFont: models.DefaultBodyFont}
	if len(s.slides) > 0 {
		cur := s.slides[s.current]
		if cur.TitleFont != "" {
			fonts.TitleFont = cur.TitleFont
		}
		if cur.BodyFont != "" {
			fonts.BodyFont = cur.BodyFont
		}
	}

	theme := s.theme.Clone()
	size := s.size
	slides := make([]models.Slide, len(s.slides))
	for i, sl := range s.slides {
		slides[i] = sl.Clone()
	}
	return &models.PresentationSettings{
		Theme:     &theme,
		SlideSize: &size,
		Fonts:     &fonts,
		Slides:    slides,
	}
}

// ExportDocument serialises the snapshot for download as presentation.json.
// The export carries the same sections as the persisted document, fonts
// included.
func (s *EditSession) ExportDocument() ([]byte, error) {
	return RenderDocument(s.Snapshot(), models.ExportJSON)
}
