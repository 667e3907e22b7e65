package web

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JonMunkholm/storeadmin/internal/core"
	"github.com/JonMunkholm/storeadmin/internal/web/templates"
)

var printer = message.NewPrinter(language.English)

// formatCurrency renders a dollar amount as "$1,234.50". The cents are
// taken from the decimal itself so large amounts stay exact.
func formatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.Round(2).IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = printer.Sprintf("%d", n)
	}
	return sign + "$" + whole + "." + frac
}

// formatCents renders an integer cent count as currency.
// Values that are not integers are returned unchanged.
func formatCents(cents string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(cents))
	if err != nil || !d.IsInteger() {
		return cents
	}
	return formatCurrency(d.Shift(-2))
}

// formatMoney renders a decimal dollar string as currency.
func formatMoney(amount string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return amount
	}
	return formatCurrency(d)
}

// formatDate renders a stored calendar date as "Mar 9, 2024".
func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// formatCell renders one listed value according to its column.
func formatCell(col core.ListColumn, value string) templates.Cell {
	cell := templates.Cell{Label: col.Label, Value: value, Kind: "text"}

	switch col.Format {
	case core.FormatStatus:
		label := value
		if l, ok := col.Labels[value]; ok {
			label = l
		}
		cell.Kind = "status"
		cell.Value = label
		cell.Class = strings.ToLower(label)
	case core.FormatCents:
		cell.Value = formatCents(value)
	case core.FormatMoney:
		cell.Value = formatMoney(value)
	case core.FormatImage:
		cell.Kind = "image"
	default:
		if col.Name == "date" {
			cell.Value = formatDate(value)
		}
	}
	return cell
}
