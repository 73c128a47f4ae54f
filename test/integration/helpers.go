//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Endpoint      string
	AdminPassword string
	BinaryPath    string
	Verbose       bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Endpoint:      os.Getenv("SITEAPI_ENDPOINT"),
		AdminPassword: os.Getenv("SITEAPI_ADMIN_PASSWORD"),
		BinaryPath:    getBinaryPath(),
		Verbose:       os.Getenv("SITEAPI_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the siteapi binary.
func getBinaryPath() string {
	if path := os.Getenv("SITEAPI_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../siteapi", "./siteapi", "../siteapi"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "siteapi"
}

// SkipIfMissingEndpoint skips the test when no backend is configured.
func (config *TestConfig) SkipIfMissingEndpoint(t *testing.T) {
	t.Helper()

	if config.Endpoint == "" {
		t.Skip("SITEAPI_ENDPOINT not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the binary is not built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	config.SkipIfMissingEndpoint(t)

	if _, err := exec.LookPath(config.BinaryPath); err != nil {
		t.Skipf("siteapi binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner runs siteapi commands against the configured endpoint.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes a siteapi command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--api", runner.config.Endpoint}, args...)

	cmd := exec.Command(runner.config.BinaryPath, args...) //nolint:gosec // test binary

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test value.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
