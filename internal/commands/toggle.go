package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string   { return "Mark a task completed, or pending again" }
func (c *ToggleCmd) Usage() string      { return "taskboard toggle <ref>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := lookupTask(ctx, env.Store, ref)
	if err != nil {
		return reportError(env, err)
	}

	if _, err := env.Store.ToggleTask(ctx, task.ID); err != nil {
		return reportError(env, err)
	}

	ok(env)
	return exitcode.Success
}
