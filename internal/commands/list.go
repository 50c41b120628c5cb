package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskboard` (no args) and `taskboard list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskboard list" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(env.ErrOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if err := env.Store.FetchAll(ctx); err != nil {
		return reportError(env, err)
	}

	state := env.Store.State()
	if !env.Config.Quiet {
		output.WriteSummary(env.Out, store.Count(state.Tasks))
		fmt.Fprintln(env.Out)
	}
	output.WriteList(env.Out, state)
	return exitcode.Success
}
