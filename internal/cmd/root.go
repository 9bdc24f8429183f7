// Package cmd wires the shell-ls command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lintwell/shell-ls/internal/config"
	"github.com/lintwell/shell-ls/internal/shellcheck"
)

var (
	// cfgPath overrides the config file location.
	cfgPath string

	// verbose enables debug logging.
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shell-ls",
	Short: "shell-ls - ShellCheck-backed lint services for shell scripts",
	Long: `shell-ls drives the ShellCheck static analyzer and converts its findings
into structured diagnostics for editors and agent hosts.

Features:
  - Lint script files or buffers with LSP-style diagnostic output
  - Resolves 'source'd files via configurable base directory and search paths
  - MCP server mode for agent integrations
  - Survives a missing or broken shellcheck installation gracefully`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default "+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(wikiCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger. Everything goes to stderr so stdout
// stays clean for diagnostic output and MCP framing.
func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// newLinter assembles a linter from the loaded config.
func newLinter(log *zap.SugaredLogger) (*shellcheck.Linter, *config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	return shellcheck.New(shellcheck.Config{
		ExecutablePath: cfg.ExecutablePath,
		CWD:            cfg.CWD,
		Shell:          cfg.Shell,
		Timeout:        cfg.Timeout(),
		Logger:         log,
	}), cfg, nil
}
