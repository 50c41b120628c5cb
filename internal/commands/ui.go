package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
	"taskboard/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive terminal UI.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive task board" }
func (c *UICmd) Usage() string      { return "taskboard ui" }
func (c *UICmd) NeedsBackend() bool { return true }

// LogsToFile keeps log output off the terminal the UI draws on.
func (c *UICmd) LogsToFile() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if err := ui.Run(ctx, env.Config, env.Store, env.Log); err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
