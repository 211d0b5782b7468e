// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package console

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gatehouse-id/gatehouse/internal/cli/cmd"
	"github.com/gatehouse-id/gatehouse/internal/cli/config"
	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	"github.com/gatehouse-id/gatehouse/internal/daemon"
	"github.com/gatehouse-id/gatehouse/internal/util"
)

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the console",
		Run: func(command *cobra.Command, args []string) {
			configFile, _ := command.Flags().GetString("config")

			app, err := cmd.AppFromContext(command.Context(), configFile, command)
			if err != nil {
				slog.Error(err.Error())
				return
			}

			// Make ~ nice in flag default view because go does not expand them
			app.Config.Console.Logging.FilePath = util.ExpandHomePath(app.Config.Console.Logging.FilePath)

			err = config.Config.EnsureConsoleID()
			if err != nil {
				slog.Error("Error starting console", "error", err)
				return
			}

			consoleID, err := config.Config.ConsoleID()
			if err != nil {
				slog.Error("Error retrieving console ID", "error", err)
				return
			}

			d := daemon.New(app.Config, consoleID)

			if err := d.Start(); err != nil {
				slog.Error("Error starting console", "error", err)
				return
			}

			d.Wait()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			display.PrintBanner()
		},
		SilenceErrors: true,
	}
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the console",
		Run: func(cmd *cobra.Command, args []string) {
			d := daemon.Daemon{}
			if err := d.Stop(); err != nil {
				slog.Error("Error stopping console", "error", err)
				return
			}
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			display.PrintBanner()
		},
		SilenceErrors: true,
	}
}

func ConsoleCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "console",
		Short: "Console management commands",
		Annotations: map[string]string{
			"type":     "Execution",
			"examples": "{{.Name}} {{.Command}} start  |  {{.Name}} {{.Command}} stop",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	start := startCmd()
	start.Flags().String("config", "", "Path to a console configuration file")

	command.AddCommand(start, stopCmd())
	return command
}
