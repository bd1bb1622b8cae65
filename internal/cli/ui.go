package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Styles
// =============================================================================

// Terminal output styling shared by all commands. Exported styles are
// also used by the source picker.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))
	StyleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	StyleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	StyleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	styleValue       = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleLabel       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleIconError   = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleIconInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleIconSpinner = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// =============================================================================
// Status Output
// =============================================================================

func status(icon string, iconStyle lipgloss.Style, msg string) {
	fmt.Println(iconStyle.Render(icon) + " " + msg)
}

// printSuccess prints a checkmarked success message.
func printSuccess(format string, args ...any) {
	status("✓", StyleSuccess, fmt.Sprintf(format, args...))
}

// printError prints a per-file or per-tool failure line.
func printError(format string, args ...any) {
	status("✗", styleIconError, fmt.Sprintf(format, args...))
}

// printWarning prints a non-fatal problem, like a skipped source file.
func printWarning(format string, args ...any) {
	status("!", StyleWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints a neutral status message.
func printInfo(format string, args ...any) {
	status("›", styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed detail under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Result Output
// =============================================================================

// printFile prints one produced output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value, as in `callchart tools`.
func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printStats prints one chart's function/call counts and whether the
// analysis came from cflow or the cache.
func printStats(functions, calls int, cached bool) {
	line := "  " + StyleDim.Render(fmt.Sprintf("%d functions", functions)) +
		StyleDim.Render(" · ") +
		StyleDim.Render(fmt.Sprintf("%d calls", calls)) +
		StyleDim.Render(" · ")
	if cached {
		line += StyleSuccess.Render("cached")
	} else {
		line += styleIconInfo.Render("analyzed")
	}
	fmt.Println(line)
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
