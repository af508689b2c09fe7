package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"addinlint/internal/driver"
)

// loadRunConfig resolves the effective configuration for a target path:
// an explicit --config wins, otherwise addinlint.toml next to the target is
// consulted, otherwise defaults apply.
func loadRunConfig(cmd *cobra.Command, target string) (driver.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return driver.Config{}, err
	}
	if explicit != "" {
		return driver.LoadConfig(explicit)
	}

	dir := target
	if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}
	return driver.LoadConfigIfPresent(filepath.Join(dir, driver.ConfigFileName))
}

// driverOptions builds driver.Options from the config file with command-line
// flags layered on top.
func driverOptions(cmd *cobra.Command, cfg driver.Config) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: cfg.MaxDiagnostics,
		Jobs:           cfg.Jobs,
		NoCache:        cfg.NoCache,
	}

	maxFlag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, err
	}
	if maxFlag > 0 {
		opts.MaxDiagnostics = maxFlag
	}

	if cmd.Flags().Lookup("jobs") != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return driver.Options{}, err
		}
		if cmd.Flags().Changed("jobs") {
			opts.Jobs = jobs
		}
	}

	if cmd.Flags().Lookup("no-cache") != nil {
		noCache, err := cmd.Flags().GetBool("no-cache")
		if err != nil {
			return driver.Options{}, err
		}
		if noCache {
			opts.NoCache = true
		}
	}

	opts.Severity, err = cfg.SeverityOverrides()
	if err != nil {
		return driver.Options{}, err
	}

	if !opts.NoCache {
		cache, err := driver.OpenDiskCache("addinlint")
		if err != nil {
			return driver.Options{}, fmt.Errorf("open cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}
