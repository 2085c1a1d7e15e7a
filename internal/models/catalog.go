package models

// Built-in presets shipped with every edit session.

// DefaultThemeColors is the palette used when a theme carries none
var DefaultThemeColors = ThemeColors{
	TextDark1:         "#44546A",
	TextLight1:        "#FFFFFF",
	TextDark2:         "#44546A",
	TextLight2:        "#E7E6E6",
	Accent1:           "#4472C4",
	Accent2:           "#ED7D31",
	Accent3:           "#A5A5A5",
	Accent4:           "#FFC000",
	Accent5:           "#5B9BD5",
	Accent6:           "#70AD47",
	Hyperlink:         "#0563C1",
	FollowedHyperlink: "#954F72",
}

// BuiltinThemes returns the four predefined themes
func BuiltinThemes() []Theme {
	return []Theme{
		{Name: "Default", Background: "#ffffff", TitleColor: "#000000", ContentColor: "#333333"},
		{Name: "Dark", Background: "#2c3e50", TitleColor: "#ffffff", ContentColor: "#ecf0f1"},
		{Name: "Professional", Background: "#f8f9fa", TitleColor: "#2c3e50", ContentColor: "#34495e"},
		{Name: "Creative", Background: "#f0f3f4", TitleColor: "#e74c3c", ContentColor: "#2c3e50"},
	}
}

// SlideSizes returns the fixed canvas size catalog
func SlideSizes() []SlideSize {
	return []SlideSize{
		{Name: "Standard (4:3)", Width: "800px", Height: "600px"},
		{Name: "Widescreen (16:9)", Width: "960px", Height: "540px"},
		{Name: "Custom", Width: "100%", Height: "auto"},
	}
}

// FindSlideSize looks a size up by its catalog name
func FindSlideSize(name string) (SlideSize, bool) {
	for _, s := range SlideSizes() {
		if s.Name == name {
			return s, true
		}
	}
	return SlideSize{}, false
}

// CommonFonts is the font list offered by the font editor
var CommonFonts = []string{
	"Arial",
	"Calibri",
	"Times New Roman",
	"Helvetica",
	"Georgia",
	"Verdana",
	"Tahoma",
	"Trebuchet MS",
	"Century Gothic",
	"Garamond",
}

const (
	DefaultTitleFont = "Arial"
	DefaultBodyFont  = "Calibri"
)

// ExampleChartRows returns a fresh copy of the canned dataset for kind
func ExampleChartRows(kind ChartKind) []ChartRow {
	switch kind {
	case ChartBar, ChartLine:
		return []ChartRow{
			seriesRow("A", 65, 45, 35),
			seriesRow("B", 45, 55, 25),
			seriesRow("C", 75, 35, 45),
			seriesRow("D", 55, 65, 55),
			seriesRow("E", 85, 75, 65),
		}
	case ChartPie:
		return []ChartRow{
			pieRow("Series 1", 35),
			pieRow("Series 2", 25),
			pieRow("Series 3", 20),
			pieRow("Series 4", 15),
			pieRow("Series 5", 10),
			pieRow("Series 6", 5),
		}
	}
	return nil
}

func seriesRow(name string, s1, s2, s3 float64) ChartRow {
	return ChartRow{Name: name, Values: map[string]float64{"series1": s1, "series2": s2, "series3": s3}}
}

func pieRow(name string, v float64) ChartRow {
	return ChartRow{Name: name, Values: map[string]float64{ValueColumn: v}}
}
