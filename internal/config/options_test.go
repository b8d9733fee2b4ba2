package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolvedAbortTimeout(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(AbortTimeoutEnv, "")
		require.Equal(t, DefaultAbortTimeout, (&Options{}).ResolvedAbortTimeout())
	})

	t.Run("nil options", func(t *testing.T) {
		t.Setenv(AbortTimeoutEnv, "")

		var o *Options
		require.Equal(t, DefaultAbortTimeout, o.ResolvedAbortTimeout())
	})

	t.Run("explicit value wins over env", func(t *testing.T) {
		t.Setenv(AbortTimeoutEnv, "900")

		d := 50 * time.Millisecond
		require.Equal(t, d, (&Options{AbortTimeout: &d}).ResolvedAbortTimeout())
	})

	t.Run("env var", func(t *testing.T) {
		t.Setenv(AbortTimeoutEnv, "1500")
		require.Equal(t, 1500*time.Millisecond, (&Options{}).ResolvedAbortTimeout())
	})

	t.Run("invalid env var", func(t *testing.T) {
		t.Setenv(AbortTimeoutEnv, "soon")
		require.Equal(t, DefaultAbortTimeout, (&Options{}).ResolvedAbortTimeout())
	})
}

func TestResolvedDrainTimeout(t *testing.T) {
	require.Equal(t, DefaultDrainTimeout, (&Options{}).ResolvedDrainTimeout())

	d := time.Second
	require.Equal(t, d, (&Options{DrainTimeout: &d}).ResolvedDrainTimeout())
}

func TestResolvedMaxLineSize(t *testing.T) {
	require.Equal(t, DefaultMaxLineSize, (&Options{}).ResolvedMaxLineSize())
	require.Equal(t, 4096, (&Options{MaxLineSize: 4096}).ResolvedMaxLineSize())
	require.Equal(t, DefaultMaxLineSize, (&Options{MaxLineSize: -1}).ResolvedMaxLineSize())
}
