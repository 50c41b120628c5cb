// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
	"taskboard/internal/store"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, paths, backend settings).
	Config *config.Config

	// Store is nil if NeedsBackend() returns false.
	Store *store.Store

	// Log is the command's logger. Never nil when set up by the dispatcher.
	Log *log.Logger

	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task backend.
	// Commands like help, version, login, logout return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string) int
}

// FileLogger is implemented by commands that own the terminal; the
// dispatcher sends their logs to the log file instead of stderr.
type FileLogger interface {
	LogsToFile() bool
}
