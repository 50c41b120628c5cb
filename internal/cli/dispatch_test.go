package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService
// and records the config it was built from.
func testFactory(svc *testutil.FakeService, seen **config.Config) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		if seen != nil {
			*seen = cfg
		}
		return svc, nil
	}
}

// run dispatches args with an isolated config dir and environment.
func run(t *testing.T, factory cli.ServiceFactory, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	for _, key := range []string{config.EnvAPIURL, config.EnvBackend, config.EnvToken, config.EnvTimeout, config.EnvErrorDismiss, config.EnvLogLevel, config.EnvLogFile} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	if !hasConfigFlag(args) && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		args = append(args[:1:1], append([]string{"--config", t.TempDir()}, args[1:]...)...)
	}

	d := cli.NewDispatcher(commands.DefaultRegistry, factory)
	d.SetInput(strings.NewReader(stdin))

	var out, errOut bytes.Buffer
	code = d.Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), code
}

func hasConfigFlag(args []string) bool {
	for _, a := range args {
		if a == "--config" || strings.HasPrefix(a, "--config=") {
			return true
		}
	}
	return false
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "", "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown command: unknowncmd\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "", "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown command: --quiet\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)

	// Without args the config dir comes from the environment.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	stdout, stderr, code := run(t, testFactory(svc, nil), "")

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if !strings.Contains(stdout, "   1  [ ] Buy milk\n") {
		t.Errorf("expected list output, got %q", stdout)
	}
}

func TestDispatcher_VersionSkipsBackend(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
		t.Error("factory must not be called for version")
		return nil, nil
	}
	stdout, stderr, code := run(t, factory, "", "version")

	if code != exitcode.Success || stderr != "" {
		t.Errorf("expected clean success, got %d %q", code, stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestDispatcher_FlagErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"help", "--unknown"}, "error: unknown flag: -unknown\n"},
		{[]string{"edit", "--title"}, "error: flag needs an argument: -title\n"},
	}
	for _, tt := range tests {
		_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "", tt.args...)
		if code != exitcode.UserError {
			t.Errorf("%v: expected exit code %d, got %d", tt.args, exitcode.UserError, code)
		}
		if stderr != tt.want {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.want, stderr)
		}
	}
}

func TestDispatcher_CommonFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(`api_url = "http://file:1/api"`), 0600); err != nil {
		t.Fatal(err)
	}

	var seen *config.Config
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), &seen), "",
		"list", "--config", dir, "--api-url", "http://flag:2/api/", "--quiet")

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (stderr %q)", code, stderr)
	}
	if seen.APIURL != "http://flag:2/api" {
		t.Errorf("expected flag URL without trailing slash, got %q", seen.APIURL)
	}
	if !seen.Quiet {
		t.Error("expected quiet")
	}
}

func TestDispatcher_InvalidBackend(t *testing.T) {
	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "", "list", "--backend", "carrier-pigeon")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown backend: carrier-pigeon\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_GoogleBackendNeedsLogin(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, testFactory(testutil.NewFakeService(), nil), "", "list", "--config", dir, "--backend", "google")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stderr != "error: not logged in (run: taskboard login)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{&service.APIError{StatusCode: http.StatusUnauthorized, Message: "bad token"}, exitcode.AuthError},
		{errors.New("dial failed"), exitcode.BackendError},
	}
	for _, tt := range tests {
		factory := func(ctx context.Context, cfg *config.Config, logger *log.Logger) (service.Service, error) {
			return nil, tt.err
		}
		_, _, code := run(t, factory, "", "list")
		if code != tt.code {
			t.Errorf("%v: expected exit code %d, got %d", tt.err, tt.code, code)
		}
	}
}

func TestDispatcher_RmReadsConfirmation(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "Buy milk", false)

	stdout, _, code := run(t, testFactory(svc, nil), "yes\n", "rm", "1")

	if code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("expected ok, got %d %q", code, stdout)
	}
	if len(svc.Tasks()) != 0 {
		t.Error("expected task deleted")
	}
}

// Flags are reset between runs of the same command value.
func TestDispatcher_EditFlagsDoNotLeak(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("1", "a", false)
	svc.AddTask("2", "b", false)
	factory := testFactory(svc, nil)

	if _, stderr, code := run(t, factory, "", "edit", "--title", "A", "1"); code != exitcode.Success {
		t.Fatalf("first edit failed: %q", stderr)
	}
	if _, _, code := run(t, factory, "", "edit", "2"); code != exitcode.UserError {
		t.Errorf("expected second edit without flags to be rejected, got %d", code)
	}
	if got := svc.Tasks()[1].Title; got != "b" {
		t.Errorf("expected task 2 untouched, got %q", got)
	}
}
