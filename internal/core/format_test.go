package core

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{-4463.03, "($4,463)"},
		{17785.64, "$17,786"},
		{4190.24, "$4,190"},
		{-13402.81, "($13,403)"},
		{999.5, "$1,000"},
		{12, "$12"},
		{1234567.4, "$1,234,567"},
	}
	for _, tc := range cases {
		if got := FormatCurrency(tc.in); got != tc.want {
			t.Fatalf("FormatCurrency(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{-76.4, "-76.4%"},
		{0, "0.0%"},
		{87.0, "+87.0%"},
		{-200.2, "-200.2%"},
		{12.34, "+12.3%"},
		{-0.04, "-0.0%"},
	}
	for _, tc := range cases {
		if got := FormatChange(tc.in); got != tc.want {
			t.Fatalf("FormatChange(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatAxisAndTooltipCurrency(t *testing.T) {
	if got := FormatAxisCurrency(12000); got != "$12,000" {
		t.Fatalf("axis 12000 = %q", got)
	}
	if got := FormatAxisCurrency(4190.24); got != "$4,190.24" {
		t.Fatalf("axis 4190.24 = %q", got)
	}
	if got := FormatCurrencyCents(4190.24); got != "$4,190.24" {
		t.Fatalf("cents 4190.24 = %q", got)
	}
	if got := FormatCurrencyCents(12960.30); got != "$12,960.30" {
		t.Fatalf("cents 12960.30 = %q", got)
	}
	if got := FormatCurrencyCents(0); got != "$0.00" {
		t.Fatalf("cents 0 = %q", got)
	}
}

func TestChangeClass(t *testing.T) {
	if ChangeClass(-0.1) != "negative" {
		t.Fatalf("negative change should be red")
	}
	if ChangeClass(0) != "positive" || ChangeClass(5) != "positive" {
		t.Fatalf("zero and positive change should be green")
	}
}

func TestSliceTexts(t *testing.T) {
	if got := ThemeTooltip("Degrowth Economics", 20); got != "Degrowth Economics: 20% of conference content" {
		t.Fatalf("tooltip = %q", got)
	}
	if got := SliceLabel("Sustainable Transitions", 26); got != "Sustainable Transitions: 26%" {
		t.Fatalf("label = %q", got)
	}
	if got := ApproxPercent(4); got != "~4%" {
		t.Fatalf("approx = %q", got)
	}
}

func TestFormattersAreDeterministic(t *testing.T) {
	for _, v := range []float64{-4463.03, 0, 17785.64, -76.4} {
		if FormatCurrency(v) != FormatCurrency(v) || FormatChange(v) != FormatChange(v) {
			t.Fatalf("formatting %v is not stable", v)
		}
	}
}
