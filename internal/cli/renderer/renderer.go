// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package renderer turns API payloads into terminal output.
package renderer

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
)

func RenderSourceView(view *sourceview.View) (string, error) {
	switch view.State {
	case sourceview.ViewStateLoading:
		out := display.Grey(fmt.Sprintf("Resolving source %q ...", view.Slug))
		if view.Notice != "" {
			out += "\n" + display.Red(view.Notice)
		}
		return out, nil
	case sourceview.ViewStateUnknownKind:
		return display.Red(view.Notice), nil
	case sourceview.ViewStateSource:
		return renderSourceDetail(view)
	default:
		return "", fmt.Errorf("unexpected view state: %s", view.State)
	}
}

func renderSourceDetail(view *sourceview.View) (string, error) {
	if view.Detail == nil {
		// Resolved but not renderable, the notice says why.
		return display.Red(view.Notice), nil
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "%s\n", display.LightBlue(view.Detail.Title))

	table := tablewriter.NewTable(&buf,
		tablewriter.WithMaxWidth(100),
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))

	for _, field := range view.Detail.Fields {
		_ = table.Append([]string{display.Grey(field.Label), field.Value})
	}

	_ = table.Render()

	if view.Notice != "" {
		fmt.Fprintf(&buf, "%s\n", display.Gold(view.Notice))
	}

	return buf.String(), nil
}
