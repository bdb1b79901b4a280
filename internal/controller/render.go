package controller

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	m "github.com/cluttercut/cluttercut/internal/model"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.DoubleBorder()).
			Padding(0, 7)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	cautionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const cautionText = "Warning: only textual GUID references in other assets are detected. " +
	"Assets loaded from code (classes, shaders, Resources.Load, addressables) WILL " +
	"show up as unused. Double check everything and make backups before deleting."

func renderBanner() string {
	return bannerStyle.Render("Welcome to Unity Clutter Cutter") + "\n"
}

func renderReportTable(outcome m.ScanOutcome) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Asset Path", "GUID", "Size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, record := range outcome.Report {
		table.Append([]string{
			relAssetPath(outcome.AssetsRoot, record.AssetPath),
			string(record.GUID),
			humanize.Bytes(uint64(record.Size)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d unused assets", len(outcome.Report)),
		"",
		humanize.Bytes(uint64(outcome.Stats.ReclaimableBytes)),
	})

	table.Render()

	return buf.String()
}

func renderSummary(stats m.ScanStats) string {
	var b strings.Builder

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "- Found %d unused assets out of %d total assets\n", stats.Unused, stats.Candidates)
	fmt.Fprintf(&b, "- Searched %d content files\n", stats.ContentFiles)
	fmt.Fprintf(&b, "- Potential savings: %s\n", humanize.Bytes(uint64(stats.ReclaimableBytes)))

	return b.String()
}

func renderConflicts(conflicts []m.IdentifierConflict) string {
	if len(conflicts) == 0 {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "GUID conflicts (%d): two descriptors share one identifier\n", len(conflicts))

	for _, conflict := range conflicts {
		fmt.Fprintf(&b, "- %s: %s (kept) and %s\n", conflict.GUID, conflict.First, conflict.Second)
	}

	return b.String()
}

func renderWarnings(warnings []m.Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Skipped files (%d):\n", len(warnings))

	for _, warning := range warnings {
		fmt.Fprintf(&b, "- %s: %s\n", warning.Path, warning.Reason)
	}

	return b.String()
}

// renderOutcome assembles the final output shared by both UIs.
func renderOutcome(outcome m.ScanOutcome) string {
	var b strings.Builder

	b.WriteString("\n")

	if outcome.Stats.Unused == 0 {
		b.WriteString(successStyle.Render("No unused assets found! Your project is clean!"))
		b.WriteString("\n")
	} else {
		b.WriteString(renderReportTable(outcome))
		b.WriteString("\n")
		b.WriteString(renderSummary(outcome.Stats))
	}

	if text := renderConflicts(outcome.Conflicts); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
	}

	if text := renderWarnings(outcome.Warnings); text != "" {
		b.WriteString("\n")
		b.WriteString(text)
	}

	if outcome.Stats.Unused > 0 {
		b.WriteString("\n")
		b.WriteString(cautionStyle.Render(cautionText))
		b.WriteString("\n")
	}

	return b.String()
}

// relAssetPath shortens record paths to be relative to the Assets root.
func relAssetPath(root, path m.Path) string {
	rel, err := filepath.Rel(string(root), string(path))
	if err != nil {
		return string(path)
	}

	return rel
}
