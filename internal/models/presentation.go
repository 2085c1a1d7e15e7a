package models

import "encoding/json"

// LogoPosition anchors a slide logo to one of six slide positions
type LogoPosition string

const (
	LogoTopLeft      LogoPosition = "top-left"
	LogoTopCenter    LogoPosition = "top-center"
	LogoTopRight     LogoPosition = "top-right"
	LogoBottomLeft   LogoPosition = "bottom-left"
	LogoBottomCenter LogoPosition = "bottom-center"
	LogoBottomRight  LogoPosition = "bottom-right"
)

// LogoPositions lists every valid anchor
var LogoPositions = []LogoPosition{
	LogoTopLeft, LogoTopCenter, LogoTopRight,
	LogoBottomLeft, LogoBottomCenter, LogoBottomRight,
}

// Valid reports whether p is one of the six anchors
func (p LogoPosition) Valid() bool {
	for _, pos := range LogoPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// IsTop reports whether the anchor sits on the top edge
func (p LogoPosition) IsTop() bool {
	return p == LogoTopLeft || p == LogoTopCenter || p == LogoTopRight
}

// SlideSizeKind is the per-slide size selection
type SlideSizeKind string

const (
	SizeStandard   SlideSizeKind = "standard"
	SizeWidescreen SlideSizeKind = "widescreen"
	SizeCustom     SlideSizeKind = "custom"
)

// Valid reports whether k is a known size kind
func (k SlideSizeKind) Valid() bool {
	switch k {
	case SizeStandard, SizeWidescreen, SizeCustom:
		return true
	}
	return false
}

// ThemeColors is the extended 12-entry palette of a theme
type ThemeColors struct {
	TextDark1         string `json:"textDark1" yaml:"textDark1"`
	TextLight1        string `json:"textLight1" yaml:"textLight1"`
	TextDark2         string `json:"textDark2" yaml:"textDark2"`
	TextLight2        string `json:"textLight2" yaml:"textLight2"`
	Accent1           string `json:"accent1" yaml:"accent1"`
	Accent2           string `json:"accent2" yaml:"accent2"`
	Accent3           string `json:"accent3" yaml:"accent3"`
	Accent4           string `json:"accent4" yaml:"accent4"`
	Accent5           string `json:"accent5" yaml:"accent5"`
	Accent6           string `json:"accent6" yaml:"accent6"`
	Hyperlink         string `json:"hyperlink" yaml:"hyperlink"`
	FollowedHyperlink string `json:"followedHyperlink" yaml:"followedHyperlink"`
}

// Accents returns accent1..accent6 in order, used for chart series colouring
func (c ThemeColors) Accents() []string {
	return []string{c.Accent1, c.Accent2, c.Accent3, c.Accent4, c.Accent5, c.Accent6}
}

// Theme is a named colour preset applied to every slide
type Theme struct {
	Name         string       `json:"name" yaml:"name"`
	Background   string       `json:"background" yaml:"background"`
	TitleColor   string       `json:"titleColor" yaml:"titleColor"`
	ContentColor string       `json:"contentColor" yaml:"contentColor"`
	Colors       *ThemeColors `json:"colors,omitempty" yaml:"colors,omitempty"`
}

// Clone returns a copy that shares no palette with t
func (t Theme) Clone() Theme {
	if t.Colors != nil {
		c := *t.Colors
		t.Colors = &c
	}
	return t
}

// SlideSize is the document-level canvas size
type SlideSize struct {
	Width  string `json:"width"`
	Height string `json:"height"`
	Name   string `json:"name"`
}

// Fonts is the title/body font pair
type Fonts struct {
	TitleFont string `json:"titleFont"`
	BodyFont  string `json:"bodyFont"`
}

// FontPreset is a saved entry of the font catalog
type FontPreset struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	TitleFont string `json:"titleFont"`
	BodyFont  string `json:"bodyFont"`
}

// Fonts returns the pair carried by the preset
func (p FontPreset) Fonts() Fonts {
	return Fonts{TitleFont: p.TitleFont, BodyFont: p.BodyFont}
}

// SubSlide is one titled content block of a slide, with at most one chart
type SubSlide struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Content string       `json:"content"`
	Chart   *ChartRecord `json:"chart,omitempty"`
}

// Clone deep-copies the sub-slide including its chart
func (s SubSlide) Clone() SubSlide {
	if s.Chart != nil {
		c := s.Chart.Clone()
		s.Chart = &c
	}
	return s
}

// Slide is a themed container of sub-slides
type Slide struct {
	ID           int           `json:"id"`
	Background   string        `json:"background"`
	TitleColor   string        `json:"titleColor"`
	ContentColor string        `json:"contentColor"`
	TitleFont    string        `json:"titleFont,omitempty"`
	BodyFont     string        `json:"bodyFont,omitempty"`
	Logo         string        `json:"logo,omitempty"`
	LogoPosition LogoPosition  `json:"logoPosition,omitempty"`
	SlideSize    SlideSizeKind `json:"slideSize,omitempty"`
	CustomWidth  int           `json:"customWidth,omitempty"`
	CustomHeight int           `json:"customHeight,omitempty"`
	SubSlides    []SubSlide    `json:"subSlides"`
}

// Clone deep-copies the slide
func (s Slide) Clone() Slide {
	subs := make([]SubSlide, len(s.SubSlides))
	for i, sub := range s.SubSlides {
		subs[i] = sub.Clone()
	}
	s.SubSlides = subs
	return s
}

// PresentationSettings is the full serialisable state of the editor.
// Sections are pointers so a decoded document can report a missing section.
type PresentationSettings struct {
	Theme     *Theme     `json:"theme"`
	SlideSize *SlideSize `json:"slideSize"`
	Fonts     *Fonts     `json:"fonts"`
	Slides    []Slide    `json:"slides"`
}

// Clone deep-copies the document
func (p *PresentationSettings) Clone() *PresentationSettings {
	if p == nil {
		return nil
	}
	out := &PresentationSettings{}
	if p.Theme != nil {
		t := p.Theme.Clone()
		out.Theme = &t
	}
	if p.SlideSize != nil {
		s := *p.SlideSize
		out.SlideSize = &s
	}
	if p.Fonts != nil {
		f := *p.Fonts
		out.Fonts = &f
	}
	if p.Slides != nil {
		out.Slides = make([]Slide, len(p.Slides))
		for i, s := range p.Slides {
			out.Slides[i] = s.Clone()
		}
	}
	return out
}

// APIResponse is the acknowledgment returned by the settings endpoint
type APIResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}
