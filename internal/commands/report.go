package commands

import (
	"errors"
	"fmt"

	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

// reportError prints a failed operation and returns its exit code.
// Backend failures print the message the store recorded.
func reportError(env *Env, err error) int {
	var notFound *errRefNotFound
	if errors.As(err, &notFound) {
		fmt.Fprintf(env.ErrOut, "error: %v\n", err)
		return exitcode.UserError
	}

	msg := env.Store.State().Error
	if msg == "" {
		msg = err.Error()
	}
	fmt.Fprintf(env.ErrOut, "error: %s\n", msg)
	env.Log.Debug("operation failed", "err", err)

	if service.IsAuthError(err) {
		return exitcode.AuthError
	}
	return exitcode.BackendError
}

// ok prints the success marker unless quiet.
func ok(env *Env) {
	if !env.Config.Quiet {
		fmt.Fprintln(env.Out, "ok")
	}
}

// optionalString is a flag value that remembers whether it was set.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(s string) error {
	o.value = s
	o.set = true
	return nil
}
