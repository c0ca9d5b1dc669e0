// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either their short or long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the LIMBKERN_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
// Unparseable values leave the configuration untouched.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func parseUint(v string, dst *uint64) {
	if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
		*dst = parsed
	}
}

func parseInt(v string, dst *int) {
	if parsed, err := strconv.Atoi(v); err == nil {
		*dst = parsed
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"WIDTH", []string{"width"}, func(c *AppConfig, v string) { parseInt(v, &c.Width) }},
	{"X", []string{"x"}, func(c *AppConfig, v string) { parseUint(v, &c.Base) }},
	{"E", []string{"e"}, func(c *AppConfig, v string) { parseUint(v, &c.Exponent) }},
	{"M", []string{"m"}, func(c *AppConfig, v string) { parseUint(v, &c.Modulus) }},
	{"XS_LEN", []string{"xs-len"}, func(c *AppConfig, v string) { parseInt(v, &c.XsLen) }},
	{"YS_LEN", []string{"ys-len"}, func(c *AppConfig, v string) { parseInt(v, &c.YsLen) }},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) { parseUint(v, &c.Seed) }},
	{"STRASSEN_THRESHOLD", []string{"strassen-threshold"}, func(c *AppConfig, v string) { parseInt(v, &c.StrassenThreshold) }},
	{"ITERATIONS", []string{"iterations"}, func(c *AppConfig, v string) { parseInt(v, &c.Iterations) }},
	{"CONCURRENCY", []string{"concurrency"}, func(c *AppConfig, v string) { parseInt(v, &c.Concurrency) }},
	{"SIZES", []string{"sizes"}, func(c *AppConfig, v string) {
		if sizes, err := ParseSizes(v); err == nil {
			c.Sizes = sizes
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) { c.Mode = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},
	{"METRICS_OUT", []string{"metrics-out"}, func(c *AppConfig, v string) { c.MetricsOut = v }},

	// Boolean overrides
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// Priority: CLI flags > environment variables > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
