package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"addinlint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "addinlint",
	Short: "Contract linter for add-in program snapshots",
	Long:  `addinlint checks exported program snapshots against the add-in interop contract: naming, visibility, type mapping, and program shape.`,
}

// exitError carries an explicit process exit code through cobra. Findings
// exit with 1, operational failures with 2.
type exitError struct{ code int }

func (e exitError) Error() string { return "" }

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum diagnostics to report (0=config default)")
	rootCmd.PersistentFlags().String("config", "", "path to addinlint.toml (default: next to the target)")

	if err := rootCmd.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(2)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) bool {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}
