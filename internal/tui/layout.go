package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// listChromeLines is the number of lines a list view spends outside its rows.
const listChromeLines = 9

// centerContent places a left-aligned block in the middle of the screen.
func centerContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	topPadding := max(0, (height-len(lines))/3)
	leftPadding := max(0, (width-maxWidth)/2)

	var centered []string
	for _, line := range lines {
		centered = append(centered, strings.Repeat(" ", leftPadding)+line)
	}

	result := strings.Repeat("\n", topPadding) + strings.Join(centered, "\n")
	return lipgloss.NewStyle().Width(width).Height(height).Render(result)
}

// contentWidth caps a configured content width at the terminal width. A
// non-positive setting or an unknown terminal width leaves the other in force.
func contentWidth(configured, termWidth int) int {
	switch {
	case configured <= 0:
		return termWidth
	case termWidth <= 0:
		return configured
	}
	return min(configured, termWidth)
}

// truncateName shortens s to maxWidth terminal cells, ending in "...".
func truncateName(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// padName pads or truncates s to exactly width terminal cells.
func padName(s string, width int) string {
	return runewidth.FillRight(truncateName(s, width), width)
}

// listRange returns the [start, end) window keeping cursor visible in a list
// of total rows drawn in height lines.
func listRange(cursor, total, height int) (int, int) {
	visible := max(1, height-listChromeLines)
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := min(total, start+visible)
	return start, end
}

// cursorPrefix returns the marker and style for row i.
func cursorPrefix(i, cursor int, styles Styles) (string, lipgloss.Style) {
	if i == cursor {
		return "> ", styles.ListItemFocus
	}
	return "  ", styles.ListItem
}

func writeLoadingView(b *strings.Builder, styles Styles, title, msg string) {
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(styles.Loading.Render(msg))
}

func writeErrorView(b *strings.Builder, styles Styles, title, errMsg, help string) {
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(styles.Error.Render("Error: " + errMsg))
	b.WriteString("\n\n")
	b.WriteString(styles.Help.Render(help))
}

func formatYear(year int) string {
	if year <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", year)
}

func formatPlayers(minP, maxP int) string {
	if minP == maxP {
		return fmt.Sprintf("%dp", minP)
	}
	return fmt.Sprintf("%d-%dp", minP, maxP)
}

func formatRank(rank int) string {
	if rank <= 0 {
		return "  -  "
	}
	return fmt.Sprintf("#%-4d", rank)
}
