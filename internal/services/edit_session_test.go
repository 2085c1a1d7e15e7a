package services

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppttheme/internal/models"
)

// recorder counts observer notifications and keeps the last snapshot
type recorder struct {
	calls int
	last  *models.PresentationSettings
}

func (r *recorder) observe(doc *models.PresentationSettings) {
	r.calls++
	r.last = doc
}

func newRecordedSession(t *testing.T, opts ...Option) (*EditSession, *recorder) {
	t.Helper()

	rec := &recorder{}
	s := NewEditSession(append(opts, WithObserver(rec.observe))...)
	return s, rec
}

func strPtr(s string) *string { return &s }

func Test_NewEditSession_Seed(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	doc := s.Snapshot()

	require.Len(t, doc.Slides, 1)
	slide := doc.Slides[0]
	assert.Equal(t, 1, slide.ID)
	assert.Equal(t, "#ffffff", slide.Background)
	assert.Equal(t, "#000000", slide.TitleColor)
	assert.Equal(t, "#333333", slide.ContentColor)
	require.Len(t, slide.SubSlides, 1)
	assert.Equal(t, "Title 1", slide.SubSlides[0].Title)
	assert.Equal(t, "Your content here...", slide.SubSlides[0].Content)

	assert.Equal(t, "Default", doc.Theme.Name)
	assert.Equal(t, models.SlideSizes()[0], *doc.SlideSize)
	assert.Equal(t, models.Fonts{TitleFont: "Arial", BodyFont: "Calibri"}, *doc.Fonts)
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Equal(t, 4, s.Themes().Len())
	assert.Equal(t, models.DefaultThemeColors, s.ThemeColors())
}

func Test_EditSession_AddSlide(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)
	s.ApplyFonts(models.Fonts{TitleFont: "Georgia", BodyFont: "Verdana"})
	require.NoError(t, s.ApplyThemeByName("Dark"))
	rec.calls = 0

	for i := 0; i < 3; i++ {
		before := s.SlideCount()
		s.AddSlide()
		assert.Equal(t, before+1, s.SlideCount())
		assert.Equal(t, s.SlideCount()-1, s.CurrentIndex())
	}
	assert.Equal(t, 3, rec.calls)

	doc := s.Snapshot()
	last := doc.Slides[3]
	assert.Equal(t, 4, last.ID)
	assert.Equal(t, "#2c3e50", last.Background)
	assert.Equal(t, "#ffffff", last.TitleColor)
	assert.Equal(t, "#ecf0f1", last.ContentColor)
	assert.Equal(t, "Georgia", last.TitleFont)
	assert.Equal(t, "Verdana", last.BodyFont)
	assert.Equal(t, "Title 4", last.SubSlides[0].Title)
	assert.Equal(t, "New slide content...", last.SubSlides[0].Content)

	ids := map[int]bool{}
	for _, sl := range doc.Slides {
		assert.False(t, ids[sl.ID], "duplicate slide id %d", sl.ID)
		ids[sl.ID] = true
	}
}

func Test_EditSession_Navigate(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)
	s.AddSlide()
	s.AddSlide()
	rec.calls = 0

	require.NoError(t, s.Navigate(DirectionNext))
	assert.Equal(t, 2, s.CurrentIndex(), "clamped at the last slide")
	assert.Zero(t, rec.calls, "no notification without a change")

	require.NoError(t, s.Navigate(DirectionPrev))
	require.NoError(t, s.Navigate(DirectionPrev))
	require.NoError(t, s.Navigate(DirectionPrev))
	assert.Equal(t, 0, s.CurrentIndex(), "clamped at the first slide")
	assert.Equal(t, 2, rec.calls)

	err := s.Navigate("sideways")
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 0, s.CurrentIndex())
}

func Test_EditSession_Select(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()

	require.NoError(t, s.Select(0))
	assert.Equal(t, 0, s.CurrentIndex())
	require.ErrorIs(t, s.Select(2), ErrOutOfRange)
	require.ErrorIs(t, s.Select(-1), ErrOutOfRange)
	assert.Equal(t, 0, s.CurrentIndex())
}

func Test_EditSession_ApplyTheme(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()
	require.NoError(t, s.UpdateSlideField(1, FieldBackground, "#123456"))
	s.ApplyFonts(models.Fonts{TitleFont: "Garamond", BodyFont: "Tahoma"})

	theme := models.Theme{Name: "Ocean", Background: "#001f3f", TitleColor: "#7fdbff", ContentColor: "#39cccc"}
	s.ApplyTheme(theme)

	doc := s.Snapshot()
	for _, sl := range doc.Slides {
		assert.Equal(t, theme.Background, sl.Background)
		assert.Equal(t, theme.TitleColor, sl.TitleColor)
		assert.Equal(t, theme.ContentColor, sl.ContentColor)
	}
	assert.Equal(t, "Garamond", doc.Slides[1].TitleFont, "fonts are not touched by themes")
	assert.Equal(t, "Ocean", s.CurrentTheme().Name)

	require.ErrorIs(t, s.ApplyThemeByName("Nope"), ErrUnknownTheme)
}

func Test_EditSession_SaveTheme(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	colors := models.DefaultThemeColors
	colors.TextLight1 = "#fafafa"
	colors.TextDark1 = "#101010"
	colors.TextDark2 = "#202020"

	theme := s.SaveTheme(colors, "Mine")

	assert.Equal(t, models.Theme{
		Name:         "Mine",
		Background:   "#fafafa",
		TitleColor:   "#101010",
		ContentColor: "#202020",
		Colors:       &colors,
	}, theme)
	assert.Equal(t, 5, s.Themes().Len())
	assert.Equal(t, "#fafafa", s.Snapshot().Slides[0].Background)
	assert.Equal(t, colors, s.ThemeColors())

	found, ok := s.Themes().Find("Mine")
	require.True(t, ok)
	assert.Equal(t, "#101010", found.TitleColor)
}

func Test_EditSession_UpdateSlideField(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()

	require.NoError(t, s.UpdateSlideField(2, FieldTitle, "Agenda"))
	require.NoError(t, s.UpdateSlideField(2, FieldContent, "Point one"))
	require.NoError(t, s.UpdateSlideField(2, FieldTitleColor, "#ff0000"))
	require.NoError(t, s.UpdateSlideField(2, FieldLogoPosition, "bottom-right"))

	doc := s.Snapshot()
	assert.Equal(t, "Agenda", doc.Slides[1].SubSlides[0].Title)
	assert.Equal(t, "Point one", doc.Slides[1].SubSlides[0].Content)
	assert.Equal(t, "#ff0000", doc.Slides[1].TitleColor)
	assert.Equal(t, models.LogoBottomRight, doc.Slides[1].LogoPosition)
	assert.Equal(t, "Title 1", doc.Slides[0].SubSlides[0].Title, "other slides untouched")

	require.ErrorIs(t, s.UpdateSlideField(99, FieldTitle, "x"), ErrSlideNotFound)
	require.ErrorIs(t, s.UpdateSlideField(1, "subtitle", "x"), ErrUnknownField)
	require.ErrorIs(t, s.UpdateSlideField(1, FieldLogoPosition, "middle"), ErrInvalidValue)

	require.NoError(t, s.DeleteSubSlide(0, 0))
	require.ErrorIs(t, s.UpdateSlideField(1, FieldTitle, "x"), ErrOutOfRange)
}

func Test_ParseSlideField(t *testing.T) {
	t.Parallel()

	f, err := ParseSlideField("bodyFont")
	require.NoError(t, err)
	assert.Equal(t, FieldBodyFont, f)

	_, err = ParseSlideField("footer")
	require.ErrorIs(t, err, ErrUnknownField)
}

func Test_EditSession_SetSlideBackground(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()
	s.SetSlideBackground("#abcdef")

	doc := s.Snapshot()
	assert.Equal(t, "#ffffff", doc.Slides[0].Background)
	assert.Equal(t, "#abcdef", doc.Slides[1].Background)
}

func Test_EditSession_SetSlideDimensions(t *testing.T) {
	t.Parallel()

	s := NewEditSession()

	require.NoError(t, s.SetSlideDimensions(1, models.SizeCustom, 1280, 720))
	sl := s.Snapshot().Slides[0]
	assert.Equal(t, models.SizeCustom, sl.SlideSize)
	assert.Equal(t, 1280, sl.CustomWidth)
	assert.Equal(t, 720, sl.CustomHeight)

	require.NoError(t, s.SetSlideDimensions(1, models.SizeWidescreen, 5, 5))
	sl = s.Snapshot().Slides[0]
	assert.Zero(t, sl.CustomWidth)
	assert.Zero(t, sl.CustomHeight)

	require.ErrorIs(t, s.SetSlideDimensions(1, models.SizeCustom, 0, 720), ErrInvalidValue)
	require.ErrorIs(t, s.SetSlideDimensions(1, "huge", 0, 0), ErrInvalidValue)
	require.ErrorIs(t, s.SetSlideDimensions(7, models.SizeStandard, 0, 0), ErrSlideNotFound)
}

func Test_EditSession_SelectSlideSize(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)

	require.NoError(t, s.SelectSlideSize("Widescreen (16:9)"))
	assert.Equal(t, "960px", s.Snapshot().SlideSize.Width)
	assert.Equal(t, 1, rec.calls)

	require.ErrorIs(t, s.SelectSlideSize("A4"), ErrUnknownSlideSize)
}

func Test_EditSession_UpdateSubSlide(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	chart, err := NewChart(models.ChartLine)
	require.NoError(t, err)

	require.NoError(t, s.UpdateSubSlide(0, 0, SubSlidePatch{Title: strPtr("Sales"), Chart: chart}))
	sub := s.Snapshot().Slides[0].SubSlides[0]
	assert.Equal(t, "Sales", sub.Title)
	assert.Equal(t, "Your content here...", sub.Content, "nil fields are kept")
	require.NotNil(t, sub.Chart)
	assert.Equal(t, models.ChartLine, sub.Chart.Kind)

	// the stored chart is a copy
	chart.Rows[0].Name = "mutated"
	assert.Equal(t, "A", s.Snapshot().Slides[0].SubSlides[0].Chart.Rows[0].Name)

	require.NoError(t, s.UpdateSubSlide(0, 0, SubSlidePatch{ClearChart: true}))
	assert.Nil(t, s.Snapshot().Slides[0].SubSlides[0].Chart)

	require.ErrorIs(t, s.UpdateSubSlide(0, 1, SubSlidePatch{Title: strPtr("x")}), ErrOutOfRange)
	require.ErrorIs(t, s.UpdateSubSlide(3, 0, SubSlidePatch{Title: strPtr("x")}), ErrOutOfRange)

	bad := &models.ChartRecord{Kind: models.ChartBar, Rows: []models.ChartRow{
		{Name: "A", Values: map[string]float64{"series1": 1}},
		{Name: "B", Values: map[string]float64{"other": 1}},
	}}
	require.ErrorIs(t, s.UpdateSubSlide(0, 0, SubSlidePatch{Chart: bad}), ErrInvalidValue)
}

func Test_EditSession_DeleteSubSlide(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	_, err := s.AddChartToActiveSlide(models.ChartBar)
	require.NoError(t, err)
	_, err = s.AddChartToActiveSlide(models.ChartPie)
	require.NoError(t, err)

	before := s.Snapshot()
	require.Len(t, before.Slides[0].SubSlides, 3)

	require.NoError(t, s.DeleteSubSlide(0, 1))
	after := s.Snapshot()
	require.Len(t, after.Slides[0].SubSlides, 2)
	assert.Equal(t, before.Slides[0].SubSlides[0].ID, after.Slides[0].SubSlides[0].ID)
	assert.Equal(t, before.Slides[0].SubSlides[2].ID, after.Slides[0].SubSlides[1].ID)
	assert.Len(t, before.Slides[0].SubSlides, 3, "earlier snapshots are not affected")

	require.NoError(t, s.DeleteSubSlide(0, 0))
	require.NoError(t, s.DeleteSubSlide(0, 0))
	assert.Equal(t, 1, s.SlideCount(), "the slide stays without sub-slides")
	assert.Empty(t, s.Snapshot().Slides[0].SubSlides)

	require.ErrorIs(t, s.DeleteSubSlide(0, 0), ErrOutOfRange)
}

func Test_EditSession_AddChartToActiveSlide(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)
	s.AddSlide()
	require.NoError(t, s.Select(0))
	rec.calls = 0

	sub, err := s.AddChartToActiveSlide(models.ChartPie)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, "Pie Chart", sub.Title)
	require.NotNil(t, sub.Chart)
	assert.Equal(t, "Pie Chart", sub.Chart.Title)
	assert.Len(t, sub.Chart.Rows, 6)
	assert.Contains(t, sub.ID, "0-pie-")

	doc := s.Snapshot()
	assert.Len(t, doc.Slides[0].SubSlides, 2)
	assert.Len(t, doc.Slides[1].SubSlides, 1)

	_, err = s.AddChartToActiveSlide("radar")
	require.ErrorIs(t, err, ErrUnknownChartKind)
	assert.Len(t, s.Snapshot().Slides[0].SubSlides, 2)
}

func Test_NewChart(t *testing.T) {
	t.Parallel()

	for _, kind := range models.ChartKinds {
		chart, err := NewChart(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, chart.Kind)
		assert.Equal(t, kind.Label()+" Chart", chart.Title)
		assert.NotEmpty(t, chart.ID)
		require.NoError(t, chart.Validate())
	}

	a, _ := NewChart(models.ChartBar)
	b, _ := NewChart(models.ChartBar)
	assert.NotEqual(t, a.ID, b.ID)
}

func Test_NewChart_NormalisesKind(t *testing.T) {
	t.Parallel()

	for _, raw := range []models.ChartKind{"PIE", "Pie", " pie "} {
		chart, err := NewChart(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, models.ChartPie, chart.Kind, raw)
		assert.Equal(t, "Pie Chart", chart.Title, raw)
		assert.Len(t, chart.Rows, 6, raw)
		require.NoError(t, chart.Validate(), raw)
	}

	s := NewEditSession()
	sub, err := s.AddChartToActiveSlide("Bar")
	require.NoError(t, err)
	assert.Equal(t, models.ChartBar, sub.Chart.Kind)
	assert.Contains(t, sub.ID, "0-bar-")
}

func Test_EditSession_ChartRows(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)
	_, err := s.AddChartToActiveSlide(models.ChartBar)
	require.NoError(t, err)
	rec.calls = 0

	require.NoError(t, s.AddChartRow(0, 1))
	chart := s.Snapshot().Slides[0].SubSlides[1].Chart
	require.Len(t, chart.Rows, 6)
	assert.Equal(t, "New Row", chart.Rows[5].Name)
	assert.Equal(t, map[string]float64{"series1": 0, "series2": 0, "series3": 0}, chart.Rows[5].Values)

	require.NoError(t, s.UpdateChartCell(0, 1, 5, "name", "Extra"))
	require.NoError(t, s.UpdateChartCell(0, 1, 5, "series2", "12.5"))
	require.NoError(t, s.UpdateChartCell(0, 1, 5, "series3", "lots"))
	row := s.Snapshot().Slides[0].SubSlides[1].Chart.Rows[5]
	assert.Equal(t, "Extra", row.Name)
	assert.Equal(t, 12.5, row.Values["series2"])
	assert.Zero(t, row.Values["series3"], "unparsable input is stored as zero")

	require.NoError(t, s.DeleteChartRow(0, 1, 0))
	chart = s.Snapshot().Slides[0].SubSlides[1].Chart
	require.Len(t, chart.Rows, 5)
	assert.Equal(t, "Extra", chart.Rows[4].Name)
	assert.Equal(t, 5, rec.calls)

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{name: "sub-slide without chart", run: func() error { return s.AddChartRow(0, 0) }, wantErr: ErrInvalidValue},
		{name: "missing sub-slide", run: func() error { return s.AddChartRow(0, 7) }, wantErr: ErrOutOfRange},
		{name: "delete missing row", run: func() error { return s.DeleteChartRow(0, 1, 9) }, wantErr: ErrOutOfRange},
		{name: "cell in missing row", run: func() error { return s.UpdateChartCell(0, 1, 9, "name", "x") }, wantErr: ErrOutOfRange},
		{name: "unknown column", run: func() error { return s.UpdateChartCell(0, 1, 0, "value", "1") }, wantErr: models.ErrUnknownColumn},
	}
	for _, tt := range tests {
		require.ErrorIs(t, tt.run(), tt.wantErr, tt.name)
	}
	assert.Equal(t, 5, rec.calls, "rejected edits do not notify")
}

func Test_EditSession_FontPresets(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	preset := s.SaveFonts(models.FontPreset{Name: "Serif", TitleFont: "Garamond", BodyFont: "Georgia"})

	updated, err := s.UpdateFontPreset(preset.ID, models.FontPreset{Name: "Mono", TitleFont: "Consolas", BodyFont: "Courier New"})
	require.NoError(t, err)
	assert.Equal(t, preset.ID, updated.ID)
	assert.Equal(t, "Garamond", s.Snapshot().Slides[0].TitleFont, "slides keep the fonts they had")

	require.NoError(t, s.ApplyFontPreset(preset.ID))
	assert.Equal(t, "Consolas", s.Snapshot().Slides[0].TitleFont)

	require.NoError(t, s.DeleteFontPreset(preset.ID))
	require.ErrorIs(t, s.ApplyFontPreset(preset.ID), ErrFontPresetNotFound)
	require.ErrorIs(t, s.DeleteFontPreset(preset.ID), ErrFontPresetNotFound)
	_, err = s.UpdateFontPreset("missing", models.FontPreset{})
	require.ErrorIs(t, err, ErrFontPresetNotFound)
}

func Test_EditSession_ApplySlideSettings_RepeatedID(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	sub, err := s.AddChartToActiveSlide(models.ChartLine)
	require.NoError(t, err)

	require.NoError(t, s.ApplySlideSettings(1, SlideSettings{
		SubSlides: []SubSlideText{{ID: sub.ID, Title: "A"}, {ID: sub.ID, Title: "B"}},
	}))
	require.NoError(t, s.UpdateChartCell(0, 0, 0, "name", "Changed"))

	subs := s.Snapshot().Slides[0].SubSlides
	require.Len(t, subs, 2)
	assert.Equal(t, "Changed", subs[0].Chart.Rows[0].Name)
	assert.Equal(t, "A", subs[1].Chart.Rows[0].Name, "each sub-slide owns its chart")
}

func Test_EditSession_Fonts(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()

	s.ApplyFonts(models.Fonts{TitleFont: "Georgia", BodyFont: "Verdana"})
	doc := s.Snapshot()
	assert.Empty(t, doc.Slides[0].TitleFont, "only the active slide changes")
	assert.Equal(t, "Georgia", doc.Slides[1].TitleFont)
	assert.Equal(t, models.Fonts{TitleFont: "Georgia", BodyFont: "Verdana"}, *doc.Fonts)

	require.NoError(t, s.Select(0))
	assert.Equal(t, models.Fonts{TitleFont: "Arial", BodyFont: "Calibri"}, *s.Snapshot().Fonts)

	preset := s.SaveFonts(models.FontPreset{Name: "Serif", TitleFont: "Garamond", BodyFont: "Georgia"})
	assert.NotEmpty(t, preset.ID)
	assert.Equal(t, "Garamond", s.Snapshot().Slides[0].TitleFont)

	require.NoError(t, s.Select(1))
	require.NoError(t, s.ApplyFontPreset(preset.ID))
	assert.Equal(t, "Garamond", s.Snapshot().Slides[1].TitleFont)

	require.ErrorIs(t, s.ApplyFontPreset("missing"), ErrFontPresetNotFound)
}

func Test_EditSession_ApplySlideSettings(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	sub, err := s.AddChartToActiveSlide(models.ChartBar)
	require.NoError(t, err)
	first := s.Snapshot().Slides[0].SubSlides[0]

	settings := SlideSettings{
		Colors: SlideColors{Background: "#eeeeee"},
		Fonts:  models.Fonts{TitleFont: "Tahoma", BodyFont: "Arial"},
		General: SlideGeneral{
			SlideSize:    models.SizeCustom,
			CustomWidth:  1024,
			CustomHeight: 768,
			LogoPosition: models.LogoTopLeft,
		},
		SubSlides: []SubSlideText{
			{ID: sub.ID, Title: "Chart first", Content: ""},
			{ID: first.ID, Title: "Then text", Content: "Body"},
			{Title: "Brand new"},
		},
	}
	require.NoError(t, s.ApplySlideSettings(1, settings))

	sl := s.Snapshot().Slides[0]
	assert.Equal(t, "#eeeeee", sl.Background)
	assert.Equal(t, "#000000", sl.TitleColor, "empty colours are kept")
	assert.Equal(t, "Tahoma", sl.TitleFont)
	assert.Equal(t, 1024, sl.CustomWidth)
	assert.Equal(t, models.LogoTopLeft, sl.LogoPosition)
	require.Len(t, sl.SubSlides, 3)
	assert.Equal(t, "Chart first", sl.SubSlides[0].Title)
	require.NotNil(t, sl.SubSlides[0].Chart, "a kept sub-slide keeps its chart")
	assert.Nil(t, sl.SubSlides[1].Chart)
	assert.NotEmpty(t, sl.SubSlides[2].ID)

	bad := settings
	bad.General.CustomWidth = 0
	require.ErrorIs(t, s.ApplySlideSettings(1, bad), ErrInvalidValue)
	require.ErrorIs(t, s.ApplySlideSettings(42, settings), ErrSlideNotFound)
}

func Test_EditSession_CreateSlide(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	require.NoError(t, s.ApplyThemeByName("Creative"))

	slide, err := s.CreateSlide(SlideSettings{
		Colors:  SlideColors{TitleColor: "#111111"},
		General: SlideGeneral{SlideSize: models.SizeWidescreen},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, slide.ID)
	assert.Equal(t, "#f0f3f4", slide.Background, "missing colours come from the theme")
	assert.Equal(t, "#111111", slide.TitleColor)
	assert.Len(t, slide.SubSlides, 1)
	assert.Equal(t, 1, s.CurrentIndex())
	assert.Equal(t, 2, s.SlideCount())

	_, err = s.CreateSlide(SlideSettings{General: SlideGeneral{LogoPosition: "center"}})
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, 2, s.SlideCount())
}

func Test_EditSession_EditCursor(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()

	_, ok := s.EditCursor()
	assert.False(t, ok)

	require.NoError(t, s.StartEdit(1, FieldTitle))
	require.NoError(t, s.StartEdit(2, FieldContent))

	cur, ok := s.EditCursor()
	require.True(t, ok)
	assert.Equal(t, EditCursor{SlideID: 2, Field: FieldContent}, cur, "starting an edit replaces the previous one")

	require.ErrorIs(t, s.StartEdit(5, FieldTitle), ErrSlideNotFound)
	require.ErrorIs(t, s.StartEdit(1, "nope"), ErrUnknownField)

	s.CommitEdit()
	_, ok = s.EditCursor()
	assert.False(t, ok)
}

func Test_EditSession_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	doc := s.Snapshot()
	doc.Slides[0].SubSlides[0].Title = "changed"
	doc.Theme.Name = "changed"

	again := s.Snapshot()
	assert.Equal(t, "Title 1", again.Slides[0].SubSlides[0].Title)
	assert.Equal(t, "Default", again.Theme.Name)
}

func Test_EditSession_ExportDocument(t *testing.T) {
	t.Parallel()

	s := NewEditSession()
	s.AddSlide()
	_, err := s.AddChartToActiveSlide(models.ChartPie)
	require.NoError(t, err)

	data, err := s.ExportDocument()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"theme", "slideSize", "fonts", "slides"} {
		assert.Contains(t, raw, key)
	}

	var back models.PresentationSettings
	require.NoError(t, json.Unmarshal(data, &back))
	require.NoError(t, ValidateSettings(&back))
	if diff := cmp.Diff(s.Snapshot(), &back); diff != "" {
		t.Errorf("export round trip mismatch (-want +got):\n%s", diff)
	}
}

func Test_EditSession_ObserverGetsSnapshots(t *testing.T) {
	t.Parallel()

	s, rec := newRecordedSession(t)
	s.AddSlide()

	require.NotNil(t, rec.last)
	assert.Len(t, rec.last.Slides, 2)

	// the observer's copy is not shared with the session
	rec.last.Slides[0].Background = "#000000"
	assert.Equal(t, "#ffffff", s.Snapshot().Slides[0].Background)

	other := &recorder{}
	s.SetObserver(other.observe)
	s.SetSlideBackground("#010101")
	assert.Equal(t, 1, other.calls)
}
