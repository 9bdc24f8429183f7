package cmd

import (
	"fmt"
	"os/exec"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/lintwell/shell-ls/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively write a " + config.FileName + " config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultPath := "shellcheck"
		if p, err := exec.LookPath("shellcheck"); err == nil {
			defaultPath = p
		}

		pathPrompt := promptui.Prompt{
			Label:   "ShellCheck executable",
			Default: defaultPath,
		}
		executable, err := pathPrompt.Run()
		if err != nil {
			return err
		}

		shellSelect := promptui.Select{
			Label: "Default shell dialect",
			Items: []string{"bash", "sh", "dash", "ksh"},
		}
		_, shell, err := shellSelect.Run()
		if err != nil {
			return err
		}

		cfg := &config.Config{
			ExecutablePath: executable,
			Shell:          shell,
			TimeoutSeconds: 30,
		}

		target := cfgPath
		if target == "" {
			target = config.FileName
		}
		if err := cfg.Save(target); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		fmt.Printf("✓ Wrote %s\n", target)
		return nil
	},
}
