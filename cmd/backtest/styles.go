package main

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-macdrsi/internal/strategy"
	"github.com/rxtech-lab/argo-macdrsi/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for notices.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = cellStyle.Foreground(lipgloss.Color("42"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("196"))
)

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240")))
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// RenderReport formats a single run report as a two column table.
func RenderReport(report types.TradeStats) string {
	stats := report.Statistics

	rows := [][]string{
		{"Strategy", report.Strategy},
		{"Symbol", report.Symbol},
		{"Parameters", formatParameters(report.Parameters)},
		{"Start Value", formatAmount(report.StartValue)},
		{"End Value", formatAmount(report.EndValue)},
		{"Total Fees", formatAmount(report.TotalFees)},
		{"Total Trades", strconv.Itoa(stats.TotalTrades)},
		{"Open Trades", strconv.Itoa(stats.OpenTrades)},
		{"Net PnL", formatAmount(stats.PnlNet)},
		{"Gross PnL", formatAmount(stats.PnlGross)},
		{"Long Won / Lost", strconv.Itoa(stats.Long.Won) + " / " + strconv.Itoa(stats.Long.Lost)},
		{"Long Won / Lost Amount", formatAmount(stats.Long.WonAmount) + " / " + formatAmount(stats.Long.LostAmount)},
	}

	if report.TradesFilePath != "" {
		rows = append(rows, []string{"Trades File", report.TradesFilePath})
	}

	t := newTable().
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col == 1 && rows[row][0] == "Net PnL" {
				return pnlStyle(stats.PnlNet)
			}

			return cellStyle
		})

	return TitleStyle.Render("Backtest result") + "\n" + t.String()
}

// RenderRanking formats the best limit rows of a ranked table.
func RenderRanking(ranked types.RankedResultTable, limit int) string {
	shown := ranked
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	header := ranked.Header()
	pnlColumn := len(header) - len(types.ResultStatFields) + 1

	t := newTable().
		Headers(header...).
		Rows(shown.Rows()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col == pnlColumn {
				return pnlStyle(shown[row].PnlNet)
			}

			return cellStyle
		})

	title := TitleStyle.Render("Top results")
	if len(shown) < len(ranked) {
		title += HelpStyle.Render(" (" + strconv.Itoa(len(shown)) + " of " + strconv.Itoa(len(ranked)) + ")")
	}

	return title + "\n" + t.String()
}

func pnlStyle(pnl float64) lipgloss.Style {
	if pnl < 0 {
		return lossStyle
	}

	return gainStyle
}

func formatParameters(params map[string]int) string {
	out := ""

	for _, name := range strategy.DefaultConfig().Parameters().Names() {
		value, ok := params[name]
		if !ok {
			continue
		}

		if out != "" {
			out += " "
		}

		out += name + "=" + strconv.Itoa(value)
	}

	return out
}
