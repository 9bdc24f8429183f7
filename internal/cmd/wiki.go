package cmd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/lintwell/shell-ls/internal/shellcheck"
)

var wikiCodePattern = regexp.MustCompile(`^SC[0-9]+$`)

var wikiCmd = &cobra.Command{
	Use:   "wiki <code>",
	Short: "Open the ShellCheck wiki page for a diagnostic code",
	Long: `Opens the documentation for a ShellCheck finding in the default browser.
The code may be given as SC2154 or as the bare number 2154.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := normalizeWikiCode(args[0])
		if err != nil {
			return err
		}
		return browser.OpenURL(string(shellcheck.WikiURL(code)))
	},
}

// normalizeWikiCode accepts "SC2154", "sc2154" or "2154" and returns the
// canonical SC-prefixed form.
func normalizeWikiCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if !strings.HasPrefix(code, "SC") {
		code = "SC" + code
	}
	if !wikiCodePattern.MatchString(code) {
		return "", fmt.Errorf("invalid diagnostic code %q (expected e.g. SC2154)", raw)
	}
	return code, nil
}
