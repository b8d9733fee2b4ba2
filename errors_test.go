package enginedriver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestEngineNotFoundError_Creation tests EngineNotFoundError formatting.
func TestEngineNotFoundError_Creation(t *testing.T) {
	err := &EngineNotFoundError{Path: "/opt/bonanza/bonanza"}

	require.Error(t, err)
	require.Contains(t, err.Error(), "engine not found")
	require.Contains(t, err.Error(), "/opt/bonanza/bonanza")
}

// TestLaunchError_Unwrap tests that LaunchError exposes its cause.
func TestLaunchError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("exec format error")
	err := &LaunchError{Path: "/opt/bonanza/bonanza", Err: inner}

	require.Contains(t, err.Error(), "failed to launch engine")
	require.ErrorIs(t, err, inner)
}

// TestInvalidArgumentError_Creation tests InvalidArgumentError formatting.
func TestInvalidArgumentError_Creation(t *testing.T) {
	err := &InvalidArgumentError{Field: "name", Value: "node 1", Reason: "must contain only letters, digits, and underscores"}

	require.Equal(t, "invalid name node 1: must contain only letters, digits, and underscores", err.Error())
}

// TestStderrError_Fatal tests that fatal stderr lines are labelled as such.
func TestStderrError_Fatal(t *testing.T) {
	fatal := &StderrError{Line: "ERROR: Can't open a file, fv.bin", Fatal: true}
	plain := &StderrError{Line: "WARNING: hash too large"}

	require.Contains(t, fatal.Error(), "fatal")
	require.NotContains(t, plain.Error(), "fatal")
	require.Contains(t, plain.Error(), "WARNING: hash too large")
}

// TestProcessError_WithExitCode tests ProcessError formatting.
func TestProcessError_WithExitCode(t *testing.T) {
	err := &ProcessError{ExitCode: 2, Err: fmt.Errorf("exit status 2")}

	require.Contains(t, err.Error(), "exit 2")
	require.Contains(t, err.Error(), "exit status 2")
}

// TestErrorsAsType tests that wrapped errors are found with errors.AsType.
func TestErrorsAsType(t *testing.T) {
	wrapped := fmt.Errorf("start engine: %w", &EngineNotFoundError{Path: "bonanza"})

	nf, ok := errors.AsType[*EngineNotFoundError](wrapped)
	require.True(t, ok)
	require.Equal(t, "bonanza", nf.Path)

	base, ok := errors.AsType[EngineDriverError](wrapped)
	require.True(t, ok)
	require.True(t, base.IsEngineDriverError())
}

// TestSentinelErrors tests that sentinel errors are distinct and wrappable.
func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrAlreadyInitialized,
		ErrNotInitialized,
		ErrDriverAborted,
		ErrAlreadyConnected,
		ErrHandshakeNotReady,
		ErrHandshakeAttempted,
		ErrQueueClosed,
	}

	for i, a := range sentinels {
		require.ErrorIs(t, fmt.Errorf("wrapped: %w", a), a)

		for j, b := range sentinels {
			if i != j {
				require.NotErrorIs(t, a, b)
			}
		}
	}
}
