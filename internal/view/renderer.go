// Package view turns the dashboard datasets into HTML. Each tab has its
// own view model and template fragment; only the active tab is rendered.
package view

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"cansee/internal/chart"
	"cansee/internal/core"
)

const (
	pageTitle      = "CANSEE Strategic Analysis Dashboard"
	contentCaption = "Based on 15 presentations across 4 thematic areas"
)

var ErrTemplatesNotLoaded = errors.New("templates not loaded")

// Renderer renders dashboard pages and tab fragments from a registry.
type Renderer struct {
	reg       *core.Registry
	templates *template.Template
}

// NewRenderer parses the *.html templates found in fsys.
func NewRenderer(reg *core.Registry, fsys fs.FS) (*Renderer, error) {
	t, err := template.ParseFS(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{reg: reg, templates: t}, nil
}

// Page renders the whole document with the selector's active tab.
func (r *Renderer) Page(w io.Writer, sel *core.Selector) error {
	tv, err := r.tabView(sel.Active())
	if err != nil {
		return err
	}
	return r.execute(w, "page", PageData{Title: pageTitle, TabView: tv})
}

// Fragment renders the navigation and panel for tab, as swapped in on a tab click.
func (r *Renderer) Fragment(w io.Writer, tab core.Tab) error {
	tv, err := r.tabView(tab)
	if err != nil {
		return err
	}
	return r.execute(w, "tab_view", tv)
}

// Panel renders only the panel of tab.
func (r *Renderer) Panel(w io.Writer, tab core.Tab) error {
	vm, err := r.ViewModel(tab)
	if err != nil {
		return err
	}
	return r.execute(w, panelTemplate(tab), vm)
}

// Error renders a placeholder panel carrying msg.
func (r *Renderer) Error(w io.Writer, msg string) error {
	return r.execute(w, "error", msg)
}

// ViewModel builds the data rendered by tab's panel.
func (r *Renderer) ViewModel(tab core.Tab) (any, error) {
	switch tab {
	case core.TabOverview:
		return r.overview(), nil
	case core.TabFinancial:
		return r.financial()
	case core.TabContent:
		return r.content()
	case core.TabStrategies:
		return r.strategies(), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownTab, tab)
	}
}

func panelTemplate(tab core.Tab) string {
	return "tab_" + tab.String()
}

func (r *Renderer) tabView(active core.Tab) (TabView, error) {
	var panel bytes.Buffer
	if err := r.Panel(&panel, active); err != nil {
		return TabView{}, err
	}
	links := make([]TabLink, 0, 4)
	for _, t := range core.Tabs() {
		links = append(links, TabLink{ID: t.String(), Label: t.Label(), Active: t == active})
	}
	return TabView{Tabs: links, Active: active.String(), Panel: template.HTML(panel.String())}, nil
}

func (r *Renderer) execute(w io.Writer, name string, data any) error {
	if r.templates == nil {
		return ErrTemplatesNotLoaded
	}
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) overview() OverviewView {
	highlights := r.reg.Highlights()
	cards := make([]CardView, 0, len(highlights))
	for _, h := range highlights {
		cards = append(cards, CardView{
			Title:       h.Title,
			Value:       h.Value,
			Description: h.Description,
			Theme:       string(h.Theme),
		})
	}
	return OverviewView{Cards: cards, Citations: r.reg.Citations()}
}

func (r *Renderer) financial() (FinancialView, error) {
	colors := r.reg.BarColors()
	spec := chart.BarSpec{
		Series: []chart.Series{
			{Key: "2023", Color: colors.Year2023},
			{Key: "2024", Color: colors.Year2024},
		},
		AxisFormatter: core.FormatAxisCurrency,
		Tooltip:       core.FormatCurrencyCents,
	}
	for _, row := range r.reg.Revenue() {
		spec.Groups = append(spec.Groups, chart.BarGroup{
			Label:  row.Category,
			Values: []float64{row.Year2023, row.Year2024},
		})
	}
	fig, err := chart.Bars(spec)
	if err != nil {
		return FinancialView{}, fmt.Errorf("revenue chart: %w", err)
	}

	summary := r.reg.Summary()
	rows := make([]SummaryRowView, 0, len(summary))
	for i, m := range summary {
		rows = append(rows, SummaryRowView{
			Metric:      m.Metric,
			Year2023:    core.FormatCurrency(m.Year2023),
			Year2024:    core.FormatCurrency(m.Year2024),
			Change:      core.FormatChange(m.ChangePercent),
			ChangeClass: core.ChangeClass(m.ChangePercent),
			Striped:     i%2 == 1,
		})
	}
	return FinancialView{Revenue: chartView(fig), Rows: rows}, nil
}

func (r *Renderer) content() (ContentView, error) {
	var spec chart.PieSpec
	for _, s := range r.reg.Thematic() {
		spec.Slices = append(spec.Slices, chart.Slice{Label: s.Theme, Value: s.Value, Color: s.Color})
	}
	spec.SliceLabel = core.SliceLabel
	spec.Tooltip = core.ThemeTooltip

	fig, err := chart.Pie(spec)
	if err != nil {
		return ContentView{}, fmt.Errorf("theme chart: %w", err)
	}
	return ContentView{Themes: chartView(fig), Caption: contentCaption}, nil
}

func (r *Renderer) strategies() StrategiesView {
	var v StrategiesView
	for _, g := range r.reg.Geographic() {
		v.Regions = append(v.Regions, RegionView{
			Region:  g.Region,
			Share:   core.ApproxPercent(g.Percentage),
			Members: g.Members,
		})
	}
	for _, p := range r.reg.Proposals() {
		pv := ProposalView{Title: p.Title, Description: p.Description, Note: p.Note}
		for _, item := range p.Initiatives {
			pv.Initiatives = append(pv.Initiatives, initiativeView(item))
		}
		v.Proposals = append(v.Proposals, pv)
	}
	return v
}

func initiativeView(item core.Initiative) InitiativeView {
	label, rest, ok := item.Split()
	if !ok {
		return InitiativeView{Text: item.String()}
	}
	return InitiativeView{Label: label, Text: rest, HasLabel: true}
}

func chartView(fig chart.Figure) ChartView {
	cv := ChartView{SVG: fig.SVG}
	for _, l := range fig.Legend {
		cv.Legend = append(cv.Legend, LegendEntry{Label: l.Label, Tooltip: l.Tooltip, Swatch: swatch(l.Color)})
	}
	for _, d := range fig.Data {
		cv.Points = append(cv.Points, LegendEntry{Label: d.Group + " " + d.Series, Tooltip: d.Tooltip, Swatch: swatch(d.Color)})
	}
	return cv
}

// swatch builds the inline style of a color chip. Colors come from the
// compiled-in datasets only.
func swatch(color string) template.CSS {
	return template.CSS("background-color: " + color)
}
