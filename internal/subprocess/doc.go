// Package subprocess runs an engine as a local child process.
//
// This package implements the config.Process interface by spawning the
// engine with its three standard streams connected to pipes owned by the
// driver. It handles process start, exit notification, forced termination,
// and releasing the pipes so that blocked readers return.
package subprocess
