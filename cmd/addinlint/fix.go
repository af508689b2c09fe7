package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"addinlint/internal/driver"
	"addinlint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] <program.snapshot.json|directory>",
	Short: "Apply available fixes to the underlying source files",
	Long:  "Run the contract checks, synthesize fixes for the violations that support them, and apply the fixes according to the chosen strategy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFix,
}

func init() {
	fixCmd.Flags().Bool("all", false, "apply all safe fixes")
	fixCmd.Flags().Bool("once", false, "apply the first available fix (default)")
	fixCmd.Flags().String("id", "", "apply fix with a specific identifier")
	fixCmd.Flags().Bool("dry-run", false, "report what would change without writing files")
}

func runFix(cmd *cobra.Command, args []string) error {
	target := args[0]

	applyAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	applyOnceFlag, err := cmd.Flags().GetBool("once")
	if err != nil {
		return err
	}
	targetID, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}

	if targetID != "" && (applyAll || applyOnceFlag) {
		return fmt.Errorf("--id cannot be combined with --all or --once")
	}
	if applyAll && applyOnceFlag {
		return fmt.Errorf("--all and --once are mutually exclusive")
	}

	mode := fix.ApplyModeOnce
	if targetID != "" {
		mode = fix.ApplyModeID
	} else if applyAll {
		mode = fix.ApplyModeAll
	}
	applyOpts := fix.ApplyOptions{
		Mode:     mode,
		TargetID: targetID,
		DryRun:   dryRun,
	}

	cfg, err := loadRunConfig(cmd, target)
	if err != nil {
		return err
	}
	opts, err := driverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	// Fixes edit live source text: a cached result would hand us spans the
	// synthesizer never validated against the current files.
	opts.NoCache = true
	opts.WithFixes = true

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}

	// An id is unique only within one snapshot's fix set.
	if info.IsDir() && targetID != "" {
		return fmt.Errorf("fix: --id can only be used with a single snapshot")
	}

	if !info.IsDir() {
		return runFixFile(cmd.Context(), target, opts, applyOpts)
	}
	return runFixDir(cmd.Context(), target, opts, applyOpts)
}

func runFixFile(ctx context.Context, path string, opts driver.Options, applyOpts fix.ApplyOptions) error {
	result, err := driver.AnalyzeSnapshot(ctx, path, opts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}
	res, applyErr := fix.Apply(result.Prog.Files, result.Bag.Items(), applyOpts)
	return handleApplyResult(res, applyErr)
}

func runFixDir(ctx context.Context, dir string, opts driver.Options, applyOpts fix.ApplyOptions) error {
	results, err := driver.AnalyzeDir(ctx, dir, opts)
	if err != nil {
		return fmt.Errorf("fix: check failed: %w", err)
	}

	// Each snapshot owns its FileSet, so fixes apply per snapshot; the
	// reports are merged afterwards.
	combined := &fix.ApplyResult{}
	var firstErr error
	for _, r := range results {
		if r.Prog == nil {
			continue
		}
		res, applyErr := fix.Apply(r.Prog.Files, r.Bag.Items(), applyOpts)
		if res != nil {
			combined.Applied = append(combined.Applied, res.Applied...)
			combined.Skipped = append(combined.Skipped, res.Skipped...)
			combined.FileChanges = append(combined.FileChanges, res.FileChanges...)
		}
		if applyErr != nil && !errors.Is(applyErr, fix.ErrNoFixes) && firstErr == nil {
			firstErr = applyErr
		}
	}
	if firstErr == nil && len(combined.Applied) == 0 {
		firstErr = fix.ErrNoFixes
	}
	return handleApplyResult(combined, firstErr)
}

func handleApplyResult(res *fix.ApplyResult, applyErr error) error {
	if res == nil {
		return applyErr
	}

	if len(res.Applied) > 0 {
		fmt.Fprintf(os.Stdout, "Applied %d fix(es):\n", len(res.Applied))
		for _, item := range res.Applied {
			location := item.PrimaryPath
			if location == "" {
				location = "(unknown location)"
			}
			fmt.Fprintf(os.Stdout, "  %s [%s] - %s (%d edits, %s)\n",
				item.Title, item.ID, location, item.EditCount, item.Applicability.String())
		}
	}

	if len(res.FileChanges) > 0 {
		fmt.Fprintln(os.Stdout, "Updated files:")
		for _, change := range res.FileChanges {
			fmt.Fprintf(os.Stdout, "  %s (%d edits)\n", change.Path, change.EditCount)
		}
	}

	if len(res.Skipped) > 0 {
		fmt.Fprintln(os.Stdout, "Skipped fixes:")
		for _, skip := range res.Skipped {
			id := skip.ID
			if id == "" {
				id = "(unnamed)"
			}
			if skip.Title != "" {
				fmt.Fprintf(os.Stdout, "  %s [%s]: %s\n", skip.Title, id, skip.Reason)
			} else {
				fmt.Fprintf(os.Stdout, "  [%s]: %s\n", id, skip.Reason)
			}
		}
	}

	if applyErr != nil {
		if errors.Is(applyErr, fix.ErrNoFixes) && len(res.Applied) == 0 {
			fmt.Fprintln(os.Stdout, "No applicable fixes found.")
			return nil
		}
		return applyErr
	}

	if len(res.Applied) == 0 {
		fmt.Fprintln(os.Stdout, "No fixes applied.")
	}
	return nil
}
