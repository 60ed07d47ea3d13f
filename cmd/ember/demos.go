package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ember/examples/todo"
	"github.com/vango-dev/ember/internal/config"
)

func demosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demos",
		Short: "List the bundled demos",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range todo.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", name, todo.Describe(name))
			}
		},
	}
}

func configCmd(g *globals) *cobra.Command {
	var (
		asJSON        bool
		writeDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults are applied.

With --init, write the defaults to ember.toml (or ember.json with --json)
in the config directory instead.

Examples:
  ember config
  ember config --json
  ember config --init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if writeDefaults {
				name := config.TOMLFileName
				if asJSON {
					name = config.JSONFileName
				}
				path := filepath.Join(g.configPath, name)
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				}
				if err := config.New().SaveTo(path); err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Wrote %s", path)
				return nil
			}

			cfg, _, err := g.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout(), !asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Use JSON instead of TOML")
	cmd.Flags().BoolVar(&writeDefaults, "init", false, "Write a default config file")

	return cmd
}
