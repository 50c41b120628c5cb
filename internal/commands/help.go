package commands

import (
	"context"
	"flag"
	"fmt"

	"taskboard/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskboard help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string) int {
	fmt.Fprint(env.Out, "Usage:\n")
	fmt.Fprintf(env.Out, "  %-60s %s\n", "taskboard", "List all tasks")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(env.Out, "  %-60s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(env.Out, helpFooter)
	return exitcode.Success
}

const helpFooter = `
Task references:
  <n>              Number shown by 'taskboard list' (pending first, then completed)
  #<id>            Task ID

Common flags:
  --config <dir>   Override config directory
  --api-url <url>  Override the tasks API base URL
  --backend <name> rest or google
  --quiet          Suppress informational output
  --debug          Print debug logs
`
