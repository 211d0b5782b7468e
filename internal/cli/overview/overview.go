// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package overview

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatehouse-id/gatehouse/internal/cli/cmd"
	"github.com/gatehouse-id/gatehouse/internal/cli/config"
	"github.com/gatehouse-id/gatehouse/internal/cli/renderer"
	"github.com/gatehouse-id/gatehouse/internal/logging"
)

func OverviewCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "overview",
		Short: "Show the directory overview collected by the console",
		PreRun: func(command *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			app, err := cmd.AppFromContext(command.Context(), "", command)
			if err != nil {
				return err
			}

			snapshot, err := app.Overview()
			if err != nil {
				return err
			}

			output, err := renderer.RenderOverview(snapshot)
			if err != nil {
				return err
			}

			fmt.Println(output)
			return nil
		},
		Annotations: map[string]string{
			"type":     "Inspection",
			"examples": "{{.Name}} {{.Command}}",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	return command
}
