package view

import (
	"html/template"

	"cansee/internal/core"
)

// TabLink is one entry of the tab navigation.
type TabLink struct {
	ID     string
	Label  string
	Active bool
}

// LegendEntry is a chart legend swatch with its tooltip text.
type LegendEntry struct {
	Label   string
	Tooltip string
	Swatch  template.CSS
}

// ChartView is a rendered chart ready for a template.
type ChartView struct {
	SVG    template.HTML
	Legend []LegendEntry
	Points []LegendEntry
}

type CardView struct {
	Title       string
	Value       string
	Description string
	Theme       string
}

// OverviewView is the view model of the overview tab.
type OverviewView struct {
	Cards     []CardView
	Citations []core.Citation
}

type SummaryRowView struct {
	Metric      string
	Year2023    string
	Year2024    string
	Change      string
	ChangeClass string
	Striped     bool
}

// FinancialView is the view model of the financial analysis tab.
type FinancialView struct {
	Revenue ChartView
	Rows    []SummaryRowView
}

// ContentView is the view model of the conference content tab.
type ContentView struct {
	Themes  ChartView
	Caption string
}

type RegionView struct {
	Region  string
	Share   string
	Members int
}

// InitiativeView is one proposal bullet. Label is empty when the
// initiative has no "Label:" prefix.
type InitiativeView struct {
	Label    string
	Text     string
	HasLabel bool
}

type ProposalView struct {
	Title       string
	Description string
	Initiatives []InitiativeView
	Note        string
}

// StrategiesView is the view model of the community engagement tab.
type StrategiesView struct {
	Regions   []RegionView
	Proposals []ProposalView
}

// TabView is what a tab swap renders: the navigation plus exactly one panel.
type TabView struct {
	Tabs   []TabLink
	Active string
	Panel  template.HTML
}

// PageData is the view model of the full dashboard document.
type PageData struct {
	Title string
	TabView
}
