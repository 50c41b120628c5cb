package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/output"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	force bool
}

// SetForce skips the confirmation prompt (for testing).
func (c *RmCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmCmd) Name() string       { return "rm" }
func (c *RmCmd) Aliases() []string  { return []string{"delete"} }
func (c *RmCmd) Synopsis() string   { return "Delete a task" }
func (c *RmCmd) Usage() string      { return "taskboard rm [--force] <ref>" }
func (c *RmCmd) NeedsBackend() bool { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := lookupTask(ctx, env.Store, ref)
	if err != nil {
		return reportError(env, err)
	}

	if !c.force && !confirm(env, fmt.Sprintf("Delete %q? [y/N] ", output.NormalizeTitle(task.Title))) {
		if !env.Config.Quiet {
			fmt.Fprintln(env.Out, "cancelled")
		}
		return exitcode.Success
	}

	if err := env.Store.DeleteTask(ctx, task.ID); err != nil {
		return reportError(env, err)
	}

	ok(env)
	return exitcode.Success
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
// Anything but y/yes (or no input at all) means no.
func confirm(env *Env, prompt string) bool {
	if env.In == nil {
		return false
	}
	fmt.Fprint(env.ErrOut, prompt)
	line, err := bufio.NewReader(env.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(env.ErrOut)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
