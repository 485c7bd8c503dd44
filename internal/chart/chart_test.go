package chart

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func revenueSpec() BarSpec {
	return BarSpec{
		Series: []Series{{Key: "2023", Color: "#4f46e5"}, {Key: "2024", Color: "#10b981"}},
		Groups: []BarGroup{
			{Label: "Conference Registration", Values: []float64{12960.30, 0}},
			{Label: "Membership & Other", Values: []float64{4825.34, 4190.24}},
		},
		AxisFormatter: func(v float64) string { return "$" + strconv.FormatFloat(v, 'f', 0, 64) },
		Tooltip:       func(v float64) string { return "$" + strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

func TestBarsRendersSVGAndTooltips(t *testing.T) {
	fig, err := Bars(revenueSpec())
	if err != nil {
		t.Fatalf("Bars: %v", err)
	}
	svg := string(fig.SVG)
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatalf("expected an svg document, got %.60q", svg)
	}
	if len(fig.Legend) != 2 || fig.Legend[0].Label != "2023" || fig.Legend[1].Color != "#10b981" {
		t.Fatalf("unexpected legend %+v", fig.Legend)
	}
	if len(fig.Data) != 4 {
		t.Fatalf("expected one datum per bar, got %d", len(fig.Data))
	}
	if got := fig.Data[1].Tooltip; got != "Conference Registration 2024: $0" {
		t.Fatalf("tooltip = %q", got)
	}
}

func TestBarsDeterministic(t *testing.T) {
	a, err := Bars(revenueSpec())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Bars(revenueSpec())
	if err != nil {
		t.Fatal(err)
	}
	if a.SVG != b.SVG {
		t.Fatalf("same input rendered different svg")
	}
}

func TestBarsValidation(t *testing.T) {
	if _, err := Bars(BarSpec{}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	spec := revenueSpec()
	spec.Groups[0].Values = []float64{1}
	if _, err := Bars(spec); !errors.Is(err, ErrSeriesMismatch) {
		t.Fatalf("expected ErrSeriesMismatch, got %v", err)
	}
}

func TestPieLegendCarriesTooltip(t *testing.T) {
	fig, err := Pie(PieSpec{
		Slices: []Slice{
			{Label: "Indigenous Reconciliation", Value: 27, Color: "#dc2626"},
			{Label: "Degrowth Economics", Value: 73, Color: "#7c3aed"},
		},
		Tooltip: func(l string, v float64) string { return l + " tip" },
	})
	if err != nil {
		t.Fatalf("Pie: %v", err)
	}
	if !strings.HasPrefix(string(fig.SVG), "<svg") {
		t.Fatalf("expected svg output")
	}
	if len(fig.Legend) != 2 || fig.Legend[0].Tooltip != "Indigenous Reconciliation tip" || fig.Legend[1].Color != "#7c3aed" {
		t.Fatalf("unexpected legend %+v", fig.Legend)
	}
}

func TestPieRejectsEmpty(t *testing.T) {
	if _, err := Pie(PieSpec{Slices: []Slice{{Label: "x", Value: 0}}}); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor("#dc2626")
	if c.R != 0xdc || c.G != 0x26 || c.B != 0x26 || c.A != 255 {
		t.Fatalf("unexpected color %+v", c)
	}
	if hexColor("nope") != hexColor("#000000") {
		t.Fatalf("invalid hex should fall back to black")
	}
}

func TestConcurrentRender(t *testing.T) {
	pie := PieSpec{Slices: []Slice{
		{Label: "Ecological Governance", Value: 27, Color: "#16a34a"},
		{Label: "Sustainable Transitions", Value: 73, Color: "#2563eb"},
	}}

	want, err := Bars(revenueSpec())
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			fig, err := Bars(revenueSpec())
			if err == nil && fig.SVG != want.SVG {
				err = errors.New("bar output differs between renders")
			}
			if err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := Pie(pie); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
