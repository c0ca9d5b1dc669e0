// Package config provides the configuration management for the limbkern command.
// It defines the data structure for the configuration, handles the parsing of
// command-line arguments and environment overrides, and validates the result.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/limbkern/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by limbkern.
	EnvPrefix = "LIMBKERN_"
)

// Execution modes selected with -mode.
const (
	ModeModPow    = "modpow"
	ModeMatrix    = "matrix"
	ModeCalibrate = "calibrate"
)

// Modes lists every accepted value of -mode.
var Modes = []string{ModeModPow, ModeMatrix, ModeCalibrate}

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	DefaultMode       = ModeModPow
	DefaultWidth      = 64
	DefaultTimeout    = 2 * time.Minute
	DefaultXsLen      = 64
	DefaultYsLen      = 48
	DefaultSeed       = 1
	DefaultIterations = 16
)

// AppConfig aggregates the command's configuration parameters.
type AppConfig struct {
	// Mode selects what the command runs: "modpow", "matrix" or "calibrate".
	Mode string
	// Width is the word width, in bits, used by modpow mode (8, 16, 32 or 64).
	Width int
	// Base, Exponent and Modulus are the modpow operands.
	Base     uint64
	Exponent uint64
	Modulus  uint64
	// XsLen and YsLen are the cofactor and matrix entry lengths, in limbs,
	// used by matrix mode.
	XsLen int
	YsLen int
	// Seed drives the deterministic operand generator.
	Seed uint64
	// StrassenThreshold is the limb length from which matrix products use the
	// seven-multiplication path. Zero means "resolve from profile or hardware".
	StrassenThreshold int
	// Iterations is the number of kernel calls timed per calibration probe.
	Iterations int
	// Sizes are the calibration probe sizes, in limbs. Empty means sizes
	// bracketing the hardware threshold estimate.
	Sizes []int
	// Concurrency bounds the number of probes in flight. Zero means one per CPU.
	Concurrency int
	// Timeout sets the maximum duration of the run.
	Timeout time.Duration
	// CalibrationProfile is the path of the calibration profile file.
	// If empty, uses the default path (~/.limbkern_calibration.json).
	CalibrationProfile string
	// MetricsOut, if set, receives the calibration metrics in the Prometheus
	// text exposition format.
	MetricsOut string
	// TUI renders calibration progress as a live dashboard.
	TUI bool
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses spinners, banners and informational messages.
	Quiet bool
	// NoColor disables all color output. Also respects NO_COLOR.
	NoColor bool
}

// maxForWidth returns the largest value representable in width bits.
func maxForWidth(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(width) - 1
}

// Validate checks the semantic consistency of the configuration parameters.
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate() error {
	if !slices.Contains(Modes, c.Mode) {
		return apperrors.NewConfigError("unrecognized mode: '%s'. Valid modes are: [%s]", c.Mode, strings.Join(Modes, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.StrassenThreshold < 0 {
		return apperrors.NewConfigError("strassen threshold cannot be negative: %d", c.StrassenThreshold)
	}
	switch c.Mode {
	case ModeModPow:
		switch c.Width {
		case 8, 16, 32, 64:
		default:
			return apperrors.NewConfigError("unsupported width %d: must be 8, 16, 32 or 64", c.Width)
		}
		if c.Modulus == 0 {
			return apperrors.NewConfigError("modulus must be non-zero")
		}
		if c.Modulus > maxForWidth(c.Width) {
			return apperrors.NewConfigError("modulus %d does not fit in %d bits", c.Modulus, c.Width)
		}
		if c.Base >= c.Modulus {
			return apperrors.NewConfigError("base %d must be reduced modulo %d", c.Base, c.Modulus)
		}
	case ModeMatrix:
		if c.XsLen < 1 || c.YsLen < 1 {
			return apperrors.NewConfigError("matrix lengths must be at least one limb (xs-len=%d, ys-len=%d)", c.XsLen, c.YsLen)
		}
	case ModeCalibrate:
		if c.Iterations < 1 {
			return apperrors.NewConfigError("iterations must be at least 1: %d", c.Iterations)
		}
		if c.Concurrency < 0 {
			return apperrors.NewConfigError("concurrency cannot be negative: %d", c.Concurrency)
		}
		for _, s := range c.Sizes {
			if s < 1 {
				return apperrors.NewConfigError("calibration size must be at least one limb: %d", s)
			}
		}
	}
	return nil
}

// ParseSizes parses a comma-separated list of limb counts such as "8,16,32".
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, apperrors.ValidationError{Field: "sizes", Message: fmt.Sprintf("%q is not a limb count", field)}
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. Flags explicitly given on the command line win over LIMBKERN_*
// environment variables, which win over the defaults.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments (typically os.Args[1:]).
//   - errorWriter: Where parsing errors and usage information are printed.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	modeHelp := fmt.Sprintf("Execution mode, one of [%s].", strings.Join(Modes, ", "))

	fs.StringVar(&config.Mode, "mode", DefaultMode, modeHelp)
	fs.IntVar(&config.Width, "width", DefaultWidth, "Word width in bits for modpow mode (8, 16, 32 or 64).")
	fs.Uint64Var(&config.Base, "x", 3, "Base of the modular exponentiation.")
	fs.Uint64Var(&config.Exponent, "e", 65537, "Exponent of the modular exponentiation.")
	fs.Uint64Var(&config.Modulus, "m", 1_000_000_007, "Modulus of the modular exponentiation.")
	fs.IntVar(&config.XsLen, "xs-len", DefaultXsLen, "Cofactor length in limbs for matrix mode.")
	fs.IntVar(&config.YsLen, "ys-len", DefaultYsLen, "Matrix entry length in limbs for matrix mode.")
	fs.Uint64Var(&config.Seed, "seed", DefaultSeed, "Seed for the deterministic operand generator.")
	fs.IntVar(&config.StrassenThreshold, "strassen-threshold", 0, "Limb length from which the Strassen path is used (0 resolves from profile or hardware).")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Kernel calls timed per calibration probe.")
	fs.Func("sizes", "Comma-separated calibration probe sizes in limbs (default: around the hardware estimate).", func(v string) error {
		sizes, err := ParseSizes(v)
		if err != nil {
			return err
		}
		config.Sizes = sizes
		return nil
	})
	fs.IntVar(&config.Concurrency, "concurrency", 0, "Calibration probes run in parallel (0 for one per CPU).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path to calibration profile file (default: ~/.limbkern_calibration.json).")
	fs.StringVar(&config.MetricsOut, "metrics-out", "", "Write calibration metrics to this file in Prometheus text format.")
	fs.BoolVar(&config.TUI, "tui", false, "Show calibration progress as an interactive dashboard.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Alias for -v.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Mode = strings.ToLower(config.Mode)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
