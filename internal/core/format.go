// Package core holds the dashboard datasets, the number formatters used to
// present them, and the tab selector that decides which dataset is shown.
package core

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders a dollar amount rounded to whole dollars with
// thousands grouping. Negative amounts use the accounting convention of
// parentheses instead of a minus sign.
//
// Examples:
//
//	FormatCurrency(17785.64) -> "$17,786"
//	FormatCurrency(-4463.03) -> "($4,463)"
//	FormatCurrency(0)        -> "$0"
func FormatCurrency(value float64) string {
	formatted := "$" + humanize.Comma(int64(math.Round(math.Abs(value))))
	if value < 0 {
		return "(" + formatted + ")"
	}
	return formatted
}

// FormatChange renders a year-over-year change with one decimal place.
// Only strictly positive values get a "+" prefix; negative values carry their own sign.
func FormatChange(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return sign + strconv.FormatFloat(value, 'f', 1, 64) + "%"
}

// FormatAxisCurrency renders a y-axis tick: grouped, up to three fraction digits.
func FormatAxisCurrency(value float64) string {
	rounded := math.Round(value*1000) / 1000
	return "$" + humanize.Commaf(rounded)
}

// FormatCurrencyCents renders an amount with exactly two decimals, as shown in bar tooltips.
func FormatCurrencyCents(value float64) string {
	return "$" + humanize.FormatFloat("#,###.##", value)
}

// ChangeClass returns the CSS modifier used to color a change cell.
func ChangeClass(value float64) string {
	if value < 0 {
		return "negative"
	}
	return "positive"
}

// ThemeTooltip is the pie chart tooltip text for one slice.
func ThemeTooltip(theme string, value float64) string {
	return theme + ": " + formatPoints(value) + "% of conference content"
}

// SliceLabel is the label drawn next to a pie slice.
func SliceLabel(theme string, value float64) string {
	return theme + ": " + formatPoints(value) + "%"
}

// ApproxPercent renders a regional share as "~50%".
func ApproxPercent(value float64) string {
	return "~" + formatPoints(value) + "%"
}

func formatPoints(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
