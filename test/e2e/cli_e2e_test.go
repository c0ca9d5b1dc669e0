package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds the binary and checks each mode end to end.
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	tmpDir := t.TempDir()
	binName := "limbkern"
	if runtime.GOOS == "windows" {
		binName = "limbkern.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in the package directory; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/limbkern")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build limbkern: %v", err)
	}

	profile := filepath.Join(tmpDir, "profile.json")
	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:    "ModPow",
			args:    []string{"-mode", "modpow", "-x", "4", "-e", "13", "-m", "497"},
			wantOut: "445",
		},
		{
			name:    "ModPow Quiet Narrow",
			args:    []string{"-quiet", "-width", "8", "-x", "2", "-e", "10", "-m", "251"},
			wantOut: "20",
		},
		{
			name:    "Matrix",
			args:    []string{"-mode", "matrix", "-xs-len", "40", "-ys-len", "32", "-strassen-threshold", "30"},
			wantOut: "paths agree",
		},
		{
			name:    "Calibrate",
			args:    []string{"-mode", "calibrate", "-quiet", "-sizes", "2,8", "-iterations", "1"},
			wantOut: "",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:     "Invalid Modulus",
			args:     []string{"-m", "0"},
			wantOut:  "configuration error",
			wantCode: 4,
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "limbkern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-calibration-profile", profile}, tt.args...)
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("running limbkern: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}
			if tt.wantOut != "" && !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
				t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
			}
		})
	}
}
