package config_test

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/louisbranch/ringrand/internal/platform/config"
)

// TestExitfTerminatesProcess runs the real os.Exit path in a subprocess.
func TestExitfTerminatesProcess(t *testing.T) {
	if os.Getenv("RINGRAND_EXITF_SUBPROCESS") == "1" {
		config.Exitf("fatal: %s", "length_u8 must be a multiple of 32")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitfTerminatesProcess$")
	cmd.Env = append(os.Environ(), "RINGRAND_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if want := "fatal: length_u8 must be a multiple of 32"; !strings.Contains(string(out), want) {
		t.Fatalf("expected stderr to contain %q, got %q", want, string(out))
	}
}
