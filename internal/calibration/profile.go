// This file implements calibration profile persistence.

package calibration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/agbru/limbkern/internal/config"
	"github.com/agbru/limbkern/internal/logging"
)

// Profile stores the outcome of a calibration run together with the
// hardware it was measured on, so a cached result can be rejected when the
// machine changes.
type Profile struct {
	// Hardware identification
	CPUModel    string   `json:"cpu_model"`
	CPUFeatures []string `json:"cpu_features"`
	NumCPU      int      `json:"num_cpu"`
	GOARCH      string   `json:"goarch"`
	GOOS        string   `json:"goos"`
	GoVersion   string   `json:"go_version"`
	WordSize    int      `json:"word_size"`

	// Calibrated threshold, in limbs
	StrassenThreshold int  `json:"strassen_threshold"`
	Crossover         bool `json:"crossover"`

	// Calibration metadata
	Sizes           []int     `json:"sizes"`
	Iterations      int       `json:"iterations"`
	CalibratedAt    time.Time `json:"calibrated_at"`
	CalibrationTime string    `json:"calibration_time"`

	ProfileVersion int `json:"profile_version"`
}

const (
	// CurrentProfileVersion is the current version of the profile format.
	CurrentProfileVersion = 1

	// DefaultProfileFileName is the default name for the calibration profile file.
	DefaultProfileFileName = ".limbkern_calibration.json"
)

// DefaultProfilePath returns the profile path in the user's home directory,
// or in the current directory when there is none.
func DefaultProfilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultProfileFileName
	}
	return filepath.Join(home, DefaultProfileFileName)
}

// NewProfile creates a Profile describing the current hardware.
func NewProfile() *Profile {
	return &Profile{
		CPUModel:       fmt.Sprintf("%s-%d-cores", runtime.GOARCH, runtime.NumCPU()),
		CPUFeatures:    CPUFeatures(),
		NumCPU:         runtime.NumCPU(),
		GOARCH:         runtime.GOARCH,
		GOOS:           runtime.GOOS,
		GoVersion:      runtime.Version(),
		WordSize:       32 << (^uint(0) >> 63),
		CalibratedAt:   time.Now(),
		ProfileVersion: CurrentProfileVersion,
	}
}

// Profile converts a calibration result into a Profile for the current
// hardware.
func (r Result) Profile(iterations int) *Profile {
	p := NewProfile()
	p.StrassenThreshold = r.Threshold
	p.Crossover = r.Crossover
	p.Iterations = iterations
	for _, pr := range r.Probes {
		p.Sizes = append(p.Sizes, pr.Size)
	}
	p.CalibrationTime = r.Elapsed.Round(time.Millisecond).String()
	return p
}

// LoadProfile loads a calibration profile. An empty path selects
// DefaultProfilePath.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		path = DefaultProfilePath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var profile Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// Save writes the profile as indented JSON, readable only by its owner. An
// empty path selects DefaultProfilePath.
func (p *Profile) Save(path string) error {
	if path == "" {
		path = DefaultProfilePath()
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// IsValid reports whether the profile was measured on hardware matching
// the current process: same format version, CPU count, architecture, word
// size and CPU feature set, with a usable threshold.
func (p *Profile) IsValid() bool {
	if p == nil {
		return false
	}
	if p.ProfileVersion != CurrentProfileVersion || p.StrassenThreshold < 1 {
		return false
	}
	if p.NumCPU != runtime.NumCPU() || p.GOARCH != runtime.GOARCH {
		return false
	}
	if p.WordSize != 32<<(^uint(0)>>63) {
		return false
	}
	return slices.Equal(p.CPUFeatures, CPUFeatures())
}

// IsStale checks if the profile is older than maxAge.
func (p *Profile) IsStale(maxAge time.Duration) bool {
	if p == nil {
		return true
	}
	return time.Since(p.CalibratedAt) > maxAge
}

// String returns a human-readable summary of the profile.
func (p *Profile) String() string {
	if p == nil {
		return "<nil profile>"
	}
	bound := ""
	if !p.Crossover {
		bound = " (lower bound)"
	}
	return fmt.Sprintf("Profile{CPU: %s, Strassen: %d limbs%s, Calibrated: %s}",
		p.CPUModel, p.StrassenThreshold, bound, p.CalibratedAt.Format(time.RFC3339))
}

// LoadCachedThreshold fills a zero StrassenThreshold from a valid profile
// at cfg.CalibrationProfile. It reports whether the profile was used.
func LoadCachedThreshold(cfg config.AppConfig, logger logging.Logger) (config.AppConfig, bool) {
	if cfg.StrassenThreshold != 0 {
		return cfg, false
	}
	profile, err := LoadProfile(cfg.CalibrationProfile)
	if err != nil {
		if logger != nil {
			logger.Debug("no calibration profile", logging.Err(err))
		}
		return cfg, false
	}
	if !profile.IsValid() {
		if logger != nil {
			logger.Info("ignoring calibration profile from different hardware",
				logging.String("profile", profile.String()))
		}
		return cfg, false
	}
	cfg.StrassenThreshold = profile.StrassenThreshold
	return cfg, true
}
