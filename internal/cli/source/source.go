// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Source commands inspect identity sources through the console.
package source

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gatehouse-id/gatehouse/internal/api"
	"github.com/gatehouse-id/gatehouse/internal/cli/app"
	"github.com/gatehouse-id/gatehouse/internal/cli/cmd"
	"github.com/gatehouse-id/gatehouse/internal/cli/config"
	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	"github.com/gatehouse-id/gatehouse/internal/cli/renderer"
	"github.com/gatehouse-id/gatehouse/internal/logging"
)

func viewCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "view",
		Short: "Resolve an identity source and show its details",
		Args:  cobra.ExactArgs(1),
		PreRun: func(command *cobra.Command, args []string) {
			logging.SetupClientLogging(fmt.Sprintf("%s/log/client.log", config.Config.DataDirectory()))
		},
		RunE: func(command *cobra.Command, args []string) error {
			slug := args[0]
			if slug == "" {
				return cmd.FlagErrorf("source slug must not be empty")
			}

			timeout, _ := command.Flags().GetDuration("timeout")

			app, err := cmd.AppFromContext(command.Context(), "", command)
			if err != nil {
				return err
			}

			return runView(app, slug, timeout)
		},
		Annotations: map[string]string{
			"args":     "SLUG",
			"examples": "{{.Name}} source {{.Command}} corp-ldap  |  {{.Name}} source {{.Command}} corp-ldap --timeout 10s",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().Duration("timeout", 30*time.Second, "How long to wait for the source to resolve")

	return command
}

func runView(a *app.App, slug string, timeout time.Duration) error {
	view, err := a.ViewSource(slug, timeout)
	if err != nil {
		if errors.Is(err, api.ErrViewNotFound) {
			return fmt.Errorf("view session disappeared while waiting for %q", slug)
		}
		if errors.Is(err, app.ErrSourceViewTimeout) && view != nil {
			display.Warning(fmt.Sprintf("source %q did not resolve within %s", slug, timeout))
		} else {
			return err
		}
	}

	output, err := renderer.RenderSourceView(view)
	if err != nil {
		return err
	}

	fmt.Println(output)
	return nil
}

func SourceCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "source",
		Short: "Identity source commands",
		Annotations: map[string]string{
			"type":     "Inspection",
			"examples": "{{.Name}} {{.Command}} view corp-ldap",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.AddCommand(viewCmd())
	return command
}
