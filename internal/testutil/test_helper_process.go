// Package testutil provides test utilities and helpers for brpm tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

// HelperProcessConfig configures the behavior of TestHelperProcess.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// ArgsFile, if set, receives the arguments after "--" as JSON,
	// so tests can assert on how the mocked tool was invoked.
	ArgsFile string `json:"args_file,omitempty"`
}

// Environment variable names used by TestHelperProcess.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
)

// HelperCommand returns a command string that re-runs the current test
// binary as a mock subprocess. Point an executor's command at the returned
// string and set the environment with SetHelperEnv.
func HelperCommand() string {
	return os.Args[0] + " -test.run=TestHelperProcess --"
}

// SetHelperEnv configures the helper process behavior for the duration of
// the test. The environment is inherited by subprocesses the code under
// test spawns.
func SetHelperEnv(t *testing.T, config HelperProcessConfig) {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("marshaling helper config: %v", err)
	}
	t.Setenv(EnvWantHelperProcess, "1")
	t.Setenv(EnvHelperProcessConfig, string(data))
}

// TestHelperProcess implements the helper process pattern. When invoked with
// GO_WANT_HELPER_PROCESS=1 it behaves as a mock subprocess and exits without
// returning; otherwise it returns immediately, allowing normal test
// execution.
//
// Usage in a test file:
//
//	func TestHelperProcess(t *testing.T) {
//	    testutil.TestHelperProcess(t)
//	}
func TestHelperProcess(t *testing.T) {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := HelperProcessConfig{}
	if raw := os.Getenv(EnvHelperProcessConfig); raw != "" {
		if err := json.Unmarshal([]byte(raw), &config); err != nil {
			fmt.Fprintf(os.Stderr, "helper process: bad config: %v\n", err)
			os.Exit(2)
		}
	}

	if config.ArgsFile != "" {
		args := argsAfterSeparator(os.Args)
		data, err := json.Marshal(args)
		if err == nil {
			err = os.WriteFile(config.ArgsFile, data, 0o644)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "helper process: writing args: %v\n", err)
			os.Exit(2)
		}
	}

	if config.Stdout != "" {
		fmt.Fprint(os.Stdout, config.Stdout)
	}
	if config.Stderr != "" {
		fmt.Fprint(os.Stderr, config.Stderr)
	}
	os.Exit(config.ExitCode)
}

// argsAfterSeparator returns the arguments following the "--" separator.
func argsAfterSeparator(args []string) []string {
	for i, arg := range args {
		if strings.TrimSpace(arg) == "--" {
			return args[i+1:]
		}
	}
	return nil
}
