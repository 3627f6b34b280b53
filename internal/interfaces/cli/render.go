package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/salestax-api/internal/application/dto"
	"github.com/jhoicas/salestax-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

var (
	accent  = lipgloss.Color("#2563EB")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(14)
	totalStyle = lipgloss.NewStyle().Bold(true)
	passStyle  = lipgloss.NewStyle().Foreground(success)
	failStyle  = lipgloss.NewStyle().Foreground(danger)
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeBreakdown(cmd *cobra.Command, opts *options, j entity.Jurisdiction, b dto.BreakdownResponse) error {
	if opts.jsonOutput {
		return writeJSON(cmd, b)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), renderBreakdown(j, b))
	return err
}

func renderBreakdown(j entity.Jurisdiction, b dto.BreakdownResponse) string {
	var rows []string
	row := func(label, value string) {
		rows = append(rows, labelStyle.Render(label)+value)
	}

	row("Subtotal", b.Subtotal.StringFixed(2))
	switch {
	case b.IsExempt:
		reason := ""
		if b.ExemptionReason != nil {
			reason = *b.ExemptionReason
		}
		row("Exento", reason)
	case j.IsFlat():
		row("HST", b.CombinedFlatTaxAmount.StringFixed(2))
	default:
		row("GST", b.NationalTaxAmount.StringFixed(2))
		if !b.RegionalTaxAmount.IsZero() {
			row("PST", b.RegionalTaxAmount.StringFixed(2))
		}
	}
	row("Impuesto", b.TotalTax.StringFixed(2))
	rows = append(rows, labelStyle.Render("Total")+totalStyle.Render(b.Total.StringFixed(2)))

	title := titleStyle.Render(fmt.Sprintf("%s · %s", j.Code, j.DisplayName))
	return boxStyle.Render(title + "\n\n" + strings.Join(rows, "\n"))
}

func renderRates(list []entity.Jurisdiction, defaultCode string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%-4s %-28s %8s %8s %8s %9s", "CODE", "NAME", "GST", "PST", "HST", "EFFECTIVE")))
	b.WriteString("\n")
	for _, j := range list {
		name := j.DisplayName
		if j.Code == defaultCode {
			name += " *"
		}
		if j.RegionalCompoundsOnNational {
			name += " (compuesto)"
		}
		fmt.Fprintf(&b, "%-4s %-28s %8s %8s %8s %9s\n",
			j.Code, name, percent(j.NationalRate), percent(j.RegionalRate),
			percent(j.CombinedFlatRate), j.EffectiveRate().Mul(hundred).StringFixed(3)+"%")
	}
	return b.String()
}

// percent formatea una tasa (0.09975 -> "9.975%"); cero se muestra como "-".
func percent(rate decimal.Decimal) string {
	if rate.IsZero() {
		return "-"
	}
	return rate.Mul(hundred).String() + "%"
}

func renderValidation(value, category string, valid bool) string {
	if valid {
		return passStyle.Render("✓") + " " + value + " es un número " + category + " válido"
	}
	return failStyle.Render("✗") + " " + value + " no es un número " + category + " válido"
}
