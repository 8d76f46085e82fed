package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/deckroute/pkg/graph"
)

// Terminal palette (ANSI 256).
var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

var (
	styleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	styleValue   = lipgloss.NewStyle().Foreground(colorText)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarn)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleHeader  = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorOK)
	styleIconError   = lipgloss.NewStyle().Foreground(colorFail)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorWarn)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorMuted)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)

	styleCached   = lipgloss.NewStyle().Foreground(colorOK)
	styleComputed = lipgloss.NewStyle().Foreground(colorMuted)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// status prints one line prefixed with a styled icon.
func status(icon lipgloss.Style, glyph, msg string) {
	fmt.Println(icon.Render(glyph) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(styleIconWarning, iconWarning, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints the path of a written output.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints diagram statistics on a single line.
func printStats(components, relationships, failed int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d components", components),
		fmt.Sprintf("%d relationships", relationships),
	}
	if failed > 0 {
		parts = append(parts, styleWarning.Render(fmt.Sprintf("%d unrouted", failed)))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	parts = append(parts, statusStyle.Render(status))

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += styleDim.Render(" · ")
		}
		line += styleDim.Render(part)
	}
	fmt.Println(line)
}

// routeTable builds a table with one row per relationship: its endpoints,
// arrow, complexity and route (or the warning for an unrouted one).
func routeTable(doc *graph.Document) *table.Table {
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(doc.Relationships))
	for i, r := range doc.Relationships {
		status, detail, cost := iconSuccess, r.Route, ""
		if r.Failed {
			status, detail = iconError, r.Warning
		}
		if r.Complexity != nil {
			cost = fmt.Sprintf("%g", r.Complexity.Total())
		}
		rows[i] = []string{status, r.From, r.To, r.Arrow.Symbol(), cost, detail}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleDim).
		Headers("", "From", "To", "Arrow", "Cost", "Route").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				if doc.Relationships[row].Failed {
					return styleIconError.Padding(0, 1)
				}
				return styleIconSuccess.Padding(0, 1)
			}
			if col == 5 && doc.Relationships[row].Failed {
				return styleWarning.Padding(0, 1)
			}
			return cellStyle
		})
}

// printRouteTable prints the route table for doc.
func printRouteTable(doc *graph.Document) {
	if len(doc.Relationships) == 0 {
		return
	}
	fmt.Println(routeTable(doc).Render())
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Println(styleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
