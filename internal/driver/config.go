package driver

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"addinlint/internal/diag"
)

// ConfigFileName is looked up next to the analyzed snapshot (and in parent
// directories) when no explicit --config is given.
const ConfigFileName = "addinlint.toml"

// Config is the TOML-facing shape of the tool configuration.
//
//	max_diagnostics = 256
//	jobs = 0
//	no_cache = false
//
//	[severity]
//	CLS4003 = "error"
//	MTH5002 = "info"
type Config struct {
	MaxDiagnostics int               `toml:"max_diagnostics"`
	Jobs           int               `toml:"jobs"`
	NoCache        bool              `toml:"no_cache"`
	Severity       map[string]string `toml:"severity"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{MaxDiagnostics: 256}
}

// LoadConfig reads a TOML config file. Unknown keys are errors: a typo in the
// config silently disabling an override is worse than a failed run.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("config %s: max_diagnostics must not be negative", path)
	}
	return cfg, nil
}

// LoadConfigIfPresent loads path when it exists, otherwise falls back to
// defaults.
func LoadConfigIfPresent(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return LoadConfig(path)
}

// SeverityOverrides resolves the [severity] table into rule codes. Unknown
// rule IDs and unknown levels are errors.
func (c Config) SeverityOverrides() (map[diag.Code]diag.Severity, error) {
	if len(c.Severity) == 0 {
		return nil, nil
	}
	out := make(map[diag.Code]diag.Severity, len(c.Severity))
	for id, level := range c.Severity {
		code, ok := diag.CodeByID(id)
		if !ok {
			return nil, fmt.Errorf("severity override: unknown rule %q", id)
		}
		sev, ok := diag.ParseSeverity(level)
		if !ok {
			return nil, fmt.Errorf("severity override for %s: unknown level %q", id, level)
		}
		out[code] = sev
	}
	return out, nil
}
