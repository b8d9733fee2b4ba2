package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/wagiedev/engine-driver-go/internal/errors"
)

// Config holds configuration for launching an engine.
type Config struct {
	// Args are passed to the engine executable.
	Args []string

	// Env holds additional environment variables. They are appended to the
	// current environment and therefore override it.
	Env map[string]string

	// Cwd overrides the working directory.
	// If empty, the directory of the executable is used.
	Cwd string

	// Logger is an optional logger for launch operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Launcher resolves engine paths and builds their commands.
type Launcher struct {
	cfg *Config
	log *slog.Logger
}

// New creates a launcher with the given configuration.
func New(cfg *Config) *Launcher {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Launcher{
		cfg: cfg,
		log: log.With("component", "launcher"),
	}
}

// Resolve returns the absolute path of the engine executable.
//
// Returns EngineNotFoundError if path is empty, missing, a directory, or not
// executable.
func (l *Launcher) Resolve(path string) (string, error) {
	if path == "" {
		return "", &errors.EngineNotFoundError{Path: path}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &errors.EngineNotFoundError{Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		l.log.Debug("Engine path not found", "path", abs, "error", err)

		return "", &errors.EngineNotFoundError{Path: abs, Err: err}
	}

	if info.IsDir() {
		return "", &errors.EngineNotFoundError{Path: abs, Err: fmt.Errorf("is a directory")}
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return "", &errors.EngineNotFoundError{Path: abs, Err: fmt.Errorf("not executable")}
	}

	l.log.Debug("Resolved engine path", "path", abs)

	return abs, nil
}

// WorkingDir returns the directory the engine at resolved runs in.
func (l *Launcher) WorkingDir(resolved string) string {
	if l.cfg.Cwd != "" {
		return l.cfg.Cwd
	}

	return filepath.Dir(resolved)
}

// Environment returns the environment for the engine process.
func (l *Launcher) Environment() []string {
	env := os.Environ()

	for key, value := range l.cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}

// Command builds the command for the engine at resolved.
// Standard streams are left for the caller to connect.
func (l *Launcher) Command(ctx context.Context, resolved string) *exec.Cmd {
	//nolint:gosec // G204: launching a caller-chosen engine is the purpose of this package
	cmd := exec.CommandContext(ctx, resolved, l.cfg.Args...)
	cmd.Dir = l.WorkingDir(resolved)
	cmd.Env = l.Environment()
	configureSysProcAttr(cmd)

	l.log.Debug("Built engine command", "path", resolved, "args", l.cfg.Args, "dir", cmd.Dir)

	return cmd
}
