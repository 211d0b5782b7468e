// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

type statTable struct {
	Headline string
	Rows     [][]string
}

func RenderOverview(snapshot *overview.Snapshot) (string, error) {
	var tables []statTable

	totalSources := 0
	kinds := make([]pkgmodel.SourceKind, 0, len(snapshot.SourcesByKind))
	for kind, count := range snapshot.SourcesByKind {
		kinds = append(kinds, kind)
		totalSources += count
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	sourceRows := [][]string{{"Total", fmt.Sprintf("%d", totalSources)}}
	for _, kind := range kinds {
		sourceRows = append(sourceRows, []string{string(kind), fmt.Sprintf("%d", snapshot.SourcesByKind[kind])})
	}
	if snapshot.UnknownKinds > 0 {
		sourceRows = append(sourceRows, []string{display.Gold("Unknown"), display.Gold(fmt.Sprintf("%d", snapshot.UnknownKinds))})
	}

	tables = append(tables, statTable{
		Headline: "Sources",
		Rows:     sourceRows,
	})

	disabledColor := display.Green
	if snapshot.Disabled > 0 {
		disabledColor = display.Gold
	}
	tables = append(tables, statTable{
		Headline: "Availability",
		Rows: [][]string{
			{display.Green("Enabled"), display.Green(fmt.Sprintf("%d", snapshot.Enabled))},
			{disabledColor("Disabled"), disabledColor(fmt.Sprintf("%d", snapshot.Disabled))},
		},
	})

	versionRows := [][]string{{"Running", snapshot.Version.Running}}
	if snapshot.Version.Latest != "" {
		versionRows = append(versionRows, []string{"Latest", snapshot.Version.Latest})
	}
	if snapshot.Version.UpToDate {
		versionRows = append(versionRows, []string{display.Green("Up to date"), display.Green("yes")})
	} else {
		versionRows = append(versionRows, []string{display.Gold("Up to date"), display.Gold("no")})
	}

	tables = append(tables, statTable{
		Headline: "Version",
		Rows:     versionRows,
	})

	output := renderTablesSideBySide(tables)

	if !snapshot.CollectedAt.IsZero() {
		output += "\n" + display.Grey(fmt.Sprintf("Collected at %s", snapshot.CollectedAt.Format(time.RFC3339)))
	} else {
		output += "\n" + display.Grey("No collection has completed yet")
	}

	return output, nil
}

func RenderStats(stats *apimodel.Stats) (string, error) {
	tables := []statTable{
		{
			Headline: "Console",
			Rows: [][]string{
				{"Version", stats.Version},
				{"ID", stats.ConsoleID},
			},
		},
		{
			Headline: "Views",
			Rows: [][]string{
				{"Open", fmt.Sprintf("%d", stats.OpenViews)},
			},
		},
		{
			Headline: "Renderers",
			Rows: [][]string{
				{"Kinds", strings.Join(stats.Kinds, ", ")},
			},
		},
	}

	return renderTablesSideBySide(tables), nil
}

func renderTablesSideBySide(tables []statTable) string {
	var tableOutputs []string

	for _, table := range tables {
		var buf strings.Builder

		fmt.Fprintf(&buf, "%s\n", display.LightBlue(table.Headline))

		t := tablewriter.NewTable(&buf,
			tablewriter.WithMaxWidth(100),
			tablewriter.WithRowAutoWrap(tw.WrapBreak),
			tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
				Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
			})))

		for _, row := range table.Rows {
			_ = t.Append(row)
		}

		_ = t.Render()

		tableOutputs = append(tableOutputs, buf.String())
	}

	return combineTablesSideBySide(tableOutputs)
}

func combineTablesSideBySide(tableOutputs []string) string {
	var buf strings.Builder

	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenRows:    tw.Off,
					BetweenColumns: tw.Off,
					ShowHeader:     tw.Off,
				},
				Lines: tw.Lines{
					ShowTop:    tw.Off,
					ShowBottom: tw.Off,
				},
			},
		})))

	var rows [][]string
	for _, tableOutput := range tableOutputs {
		lines := strings.Split(strings.TrimRight(tableOutput, "\n"), "\n")
		rows = append(rows, lines)
	}

	numColumns := 3
	numRows := (len(rows) + numColumns - 1) / numColumns

	for i := range numRows {
		var combinedRow []string
		for j := range numColumns {
			index := i*numColumns + j
			if index < len(rows) {
				combinedRow = append(combinedRow, strings.Join(rows[index], "\n"))
			} else {
				combinedRow = append(combinedRow, "")
			}
		}
		_ = table.Append(combinedRow)
	}

	_ = table.Render()

	// Strip the left and right borders so the grid reads as free-standing
	// tables.
	output := buf.String()
	lines := strings.Split(output, "\n")
	for i, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "│") && strings.HasSuffix(l, "│") {
			lines[i] = strings.Trim(l, "│")
		}
	}

	return strings.Join(lines, "\n")
}
