package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Fields that are not given keep
// their current value.
type EditCmd struct {
	title       optionalString
	description optionalString
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title.Set(title)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(desc string) {
	c.description.Set(desc)
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Change a task's title or description" }
func (c *EditCmd) Usage() string      { return "taskboard edit [--title <text>] [--description <text>] <ref>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	// fs.Var keeps whatever the value holds, so clear the previous run.
	c.title = optionalString{}
	c.description = optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string) int {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !c.title.set && !c.description.set {
		fmt.Fprintln(env.ErrOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(env.ErrOut, "error: title required")
		return exitcode.UserError
	}

	task, err := lookupTask(ctx, env.Store, ref)
	if err != nil {
		return reportError(env, err)
	}

	in := service.TaskInput{Title: task.Title, Description: task.Description}
	if c.title.set {
		in.Title = c.title.value
	}
	if c.description.set {
		in.Description = c.description.value
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if _, err := env.Store.UpdateTask(ctx, task.ID, in); err != nil {
		return reportError(env, err)
	}

	ok(env)
	return exitcode.Success
}
