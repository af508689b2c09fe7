package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"addinlint/internal/diag"
	"addinlint/internal/diagfmt"
	"addinlint/internal/driver"
	"addinlint/internal/source"
	"addinlint/internal/ui"
	"addinlint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <program.snapshot.json|directory>",
	Short: "Check program snapshots against the interop contract",
	Long:  `Check a program snapshot, or every *.snapshot.json in a directory, against the add-in contract rules and report violations.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("suggest", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("preview", false, "include fix edit previews (json only)")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("ui", false, "show interactive progress for directory runs")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	switch format {
	case "pretty", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return err
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return err
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return err
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return err
	}
	useUI, err := cmd.Flags().GetBool("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	cfg, err := loadRunConfig(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	opts.WithFixes = suggest || preview

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor(cmd),
		PathMode:  pathMode,
		ShowNotes: withNotes,
		ShowFixes: suggest || preview,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		Max:              opts.MaxDiagnostics,
		IncludeNotes:     withNotes,
		IncludeFixes:     suggest || preview,
		IncludePreviews:  preview,
	}
	meta := diagfmt.SarifRunMeta{
		ToolName:       "addinlint",
		ToolVersion:    version.Plain(),
		InvocationArgs: os.Args,
	}

	var results []driver.Result
	if info.IsDir() {
		results, err = checkDir(cmd, target, opts, useUI && format == "pretty" && isTerminal(os.Stdout))
	} else {
		var res driver.Result
		res, err = driver.AnalyzeSnapshot(cmd.Context(), target, opts)
		results = []driver.Result{res}
	}
	if err != nil && len(results) == 0 {
		return fmt.Errorf("check: %w", err)
	}

	exit := 0
	for _, r := range results {
		if r.Prog == nil {
			// The snapshot itself was unreadable; operational failure.
			exit = 2
		} else if r.Bag.HasErrors() && exit == 0 {
			exit = 1
		}
	}

	switch format {
	case "pretty":
		for idx, r := range results {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(results) > 1 || info.IsDir() {
				fmt.Fprintf(os.Stdout, "== %s ==\n", displayPath(r.Path, fullPath))
			}
			if r.Prog == nil {
				for _, d := range r.Bag.Items() {
					fmt.Fprintf(os.Stdout, "%s %s: %s\n", d.Severity.String(), d.Code.ID(), d.Message)
				}
				continue
			}
			diagfmt.Pretty(os.Stdout, r.Bag, r.Prog.Files, prettyOpts)
			if !quiet && r.Bag.Len() == 0 {
				fmt.Fprintln(os.Stdout, "no contract violations")
			}
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			files := fileSetOrEmpty(r)
			output[displayPath(r.Path, fullPath)] = diagfmt.BuildDiagnosticsOutput(r.Bag, files, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
	case "sarif":
		merged := diag.NewBag(0)
		files := emptyFileSet()
		if len(results) == 1 && results[0].Prog != nil {
			merged = results[0].Bag
			files = results[0].Prog.Files
		} else {
			// SARIF wants one run; multi-snapshot output only carries results
			// whose file sets we can merge trivially, so emit per snapshot.
			for _, r := range results {
				if err := diagfmt.Sarif(os.Stdout, r.Bag, fileSetOrEmpty(r), meta); err != nil {
					return fmt.Errorf("encode sarif: %w", err)
				}
			}
			break
		}
		if err := diagfmt.Sarif(os.Stdout, merged, files, meta); err != nil {
			return fmt.Errorf("encode sarif: %w", err)
		}
	}

	if exit != 0 {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return exitError{code: exit}
	}
	return nil
}

func checkDir(cmd *cobra.Command, dir string, opts driver.Options, withUI bool) ([]driver.Result, error) {
	if !withUI {
		return driver.AnalyzeDir(cmd.Context(), dir, opts)
	}

	files, err := snapshotFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	events := make(chan driver.Event, 64)
	opts.Observer = func(ev driver.Event) { events <- ev }

	type dirOutcome struct {
		results []driver.Result
		err     error
	}
	outcome := make(chan dirOutcome, 1)
	go func() {
		results, err := driver.AnalyzeDir(cmd.Context(), dir, opts)
		close(events)
		outcome <- dirOutcome{results, err}
	}()

	model := ui.NewProgressModel("checking "+dir, files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// The UI failing must not kill the analysis; drain and fall through.
		for range events {
		}
	}

	out := <-outcome
	return out.results, out.err
}

func snapshotFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), driver.SnapshotSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func emptyFileSet() *source.FileSet {
	return source.NewFileSet()
}

func fileSetOrEmpty(r driver.Result) *source.FileSet {
	if r.Prog != nil {
		return r.Prog.Files
	}
	return emptyFileSet()
}

func displayPath(path string, fullPath bool) string {
	if fullPath {
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	}
	return path
}
