package main

import (
	"fmt"
	"strings"

	"connroute/core"
	"connroute/scene"
	"connroute/validation"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	keyStyle   = lipgloss.NewStyle().Faint(true).Width(12)
	fieldStyle = lipgloss.NewStyle().Faint(true)
)

type summaryInfo struct {
	Output    string
	Format    string
	Bytes     int
	Layout    *scene.Layout
	Generated int
	Pinned    bool
}

// summary describes a finished export.
func summary(info summaryInfo) string {
	counts := map[core.LineType]int{}
	for _, p := range info.Layout.Paths {
		counts[p.Params.LineType]++
	}
	var kinds []string
	for _, lt := range []core.LineType{core.Straight, core.Step, core.Curve} {
		if counts[lt] > 0 {
			kinds = append(kinds, fmt.Sprintf("%d %s", counts[lt], lt))
		}
	}

	b := info.Layout.Bounds()
	rows := []string{
		titleStyle.Render("wrote " + info.Output),
		row("format", fmt.Sprintf("%s, %d bytes", info.Format, info.Bytes)),
		row("shapes", fmt.Sprint(len(info.Layout.Scene.Shapes))),
		row("connectors", strings.Join(kinds, ", ")),
		row("bounds", fmt.Sprintf("%s x %s", formatUnits(b.Width()), formatUnits(b.Height()))),
	}
	if info.Generated > 0 {
		rows = append(rows, row("ids", fmt.Sprintf("%d generated", info.Generated)))
	}
	if info.Pinned {
		rows = append(rows, row("ports", "pinned in scene file"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// issueReport lists validation issues, one per line.
func issueReport(filename string, err *validation.SceneError) string {
	rows := []string{errStyle.Bold(true).Render(fmt.Sprintf("%s: %d problems", filename, len(err.Issues)))}
	for _, is := range err.Issues {
		rows = append(rows, "  "+fieldStyle.Render(is.Field)+" "+errStyle.Render(is.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func row(key, value string) string {
	return keyStyle.Render(key) + value
}

func formatUnits(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
