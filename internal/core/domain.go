package core

import (
	"errors"
	"strings"
)

const (
	ThemeGreen  ColorTheme = "green"
	ThemeBlue   ColorTheme = "blue"
	ThemePurple ColorTheme = "purple"
)

type (
	// ColorTheme is a display color token for highlight cards.
	ColorTheme string

	// MetricRow is one line of the financial summary table.
	// ChangePercent is authored alongside the yearly values and is not derived at runtime.
	MetricRow struct {
		Metric        string  `yaml:"metric"`
		Year2023      float64 `yaml:"year_2023"`
		Year2024      float64 `yaml:"year_2024"`
		ChangePercent float64 `yaml:"change_percent"`
	}

	// RevenueRow is one category of the revenue bar chart.
	RevenueRow struct {
		Category string  `yaml:"category"`
		Year2023 float64 `yaml:"year_2023"`
		Year2024 float64 `yaml:"year_2024"`
	}

	// ThematicSlice is one wedge of the conference theme pie chart.
	ThematicSlice struct {
		Theme string  `yaml:"theme"`
		Value float64 `yaml:"value"` // percentage points
		Color string  `yaml:"color"`
	}

	GeographicRow struct {
		Region     string  `yaml:"region"`
		Percentage float64 `yaml:"percentage"`
		Members    int     `yaml:"members"`
	}

	HighlightCard struct {
		Title       string     `yaml:"title"`
		Value       string     `yaml:"value"`
		Description string     `yaml:"description"`
		Theme       ColorTheme `yaml:"color_theme"`
	}

	// Initiative is a proposal bullet, optionally shaped "Label: detail".
	Initiative string

	VolunteerProposal struct {
		Title       string       `yaml:"title"`
		Description string       `yaml:"description"`
		Initiatives []Initiative `yaml:"initiatives"`
		Note        string       `yaml:"note"`
	}

	// Citation is a fixed hyperlink shown in the overview attribution note.
	Citation struct {
		Text string `yaml:"text"`
		URL  string `yaml:"url"`
	}

	// SeriesColors maps a bar series key (a year) to its fill color.
	SeriesColors struct {
		Year2023 string `yaml:"year_2023"`
		Year2024 string `yaml:"year_2024"`
	}
)

var (
	ErrUnknownTab = errors.New("unknown tab")
)

// Split separates a leading label from the rest of the initiative at the
// first colon. The remainder keeps its leading space and any later colons.
// ok is false when the initiative carries no colon.
func (i Initiative) Split() (label, rest string, ok bool) {
	return strings.Cut(string(i), ":")
}

func (i Initiative) String() string {
	return string(i)
}
