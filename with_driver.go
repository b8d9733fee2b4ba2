package enginedriver

import (
	"context"
	"fmt"
)

// WithDriver manages driver lifecycle with automatic cleanup.
//
// This helper creates a driver, launches the engine at enginePath, executes
// the callback function, and ensures the engine is shut down via Close()
// when done.
//
// The callback receives an initialized Driver. If the callback returns an
// error, it is returned to the caller. If Close() fails, a warning is
// logged but does not override the callback's error.
//
// Example usage:
//
//	err := enginedriver.WithDriver(ctx, "/opt/bonanza/bonanza", func(d enginedriver.Driver) error {
//	    return d.ConnectToDfpn(enginedriver.DfpnConfig{
//	        Address:     "dfpn.example.org",
//	        Port:        4084,
//	        Name:        "solver",
//	        ThreadCount: 2,
//	        HashSize:    20,
//	    })
//	},
//	    enginedriver.WithLogger(log),
//	)
func WithDriver(ctx context.Context, enginePath string, fn func(Driver) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyDriverOptions(opts)

	log := options.Logger
	if log == nil {
		log = NopLogger()
	}

	d := newDriverImpl(options)
	if err := d.Initialize(ctx, enginePath); err != nil {
		return fmt.Errorf("failed to initialize driver: %w", err)
	}

	defer func() {
		if closeErr := d.Close(); closeErr != nil {
			log.Warn("failed to close driver", "error", closeErr)
		}
	}()

	return fn(d)
}
