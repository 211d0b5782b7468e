// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package configcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gatehouse-id/gatehouse/internal/cli/cmd"
	"github.com/gatehouse-id/gatehouse/internal/cli/config"
	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

func ConfigCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "config",
		Short: "Work with the gatehouse configuration",
		Annotations: map[string]string{
			"type":     "Tooling",
			"examples": "{{.Name}} {{.Command}} init",
		},
		SilenceErrors: true,
	}

	command.AddCommand(ConfigInitCmd())

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	return command
}

func ConfigInitCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default settings",
		RunE: func(command *cobra.Command, args []string) error {
			force, _ := command.Flags().GetBool("force")

			path := filepath.Join(config.Config.ConfigDirectory(), config.ConfigFileNamePrefix+".yaml")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists at %s, use --force to overwrite", path)
			}

			content, err := yaml.Marshal(pkgmodel.DefaultConfig())
			if err != nil {
				return fmt.Errorf("failed to serialize default configuration: %w", err)
			}

			if err := os.WriteFile(path, content, 0600); err != nil {
				return fmt.Errorf("failed to write configuration file: %w", err)
			}

			display.Success("Wrote " + path)
			return nil
		},
		SilenceErrors: true,
	}

	command.Flags().Bool("force", false, "Overwrite an existing configuration file")

	return command
}
