// Command ember renders and previews ember demo applications.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ember/internal/config"
	"github.com/vango-dev/ember/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	errors.DetectColors(os.Stderr)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		errors.Fprint(stderr, err)
		return 1
	}
	return 0
}

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   "ember",
		Short: "Fine-grained reactive rendering, in Go",
		Long: `Ember builds component trees into live host trees and updates only
the fragments whose state changed.

The CLI renders the bundled demos to HTML, optionally after applying
scripted state steps, and serves them in a live preview.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", ".", "Config file or directory containing ember.toml / ember.json")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		demosCmd(),
		configCmd(g),
		versionCmd(),
	)
	return cmd
}

// load reads the configuration named by the global flags and builds the
// logger for it.
func (g *globals) load(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	switch strings.ToLower(filepath.Ext(g.configPath)) {
	case ".toml", ".json":
		cfg, err = config.LoadFile(g.configPath)
	default:
		cfg, err = config.Load(g.configPath)
	}
	if err != nil {
		return nil, nil, err
	}

	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	return cfg, cfg.Logger(stderr), nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", check(), fmt.Sprintf(format, args...))
}

func check() string {
	if errors.ColorsEnabled() {
		return "\033[32m✓\033[0m"
	}
	return "✓"
}
