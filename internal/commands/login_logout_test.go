package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// authDir creates a config dir holding the given files.
func authDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func runAuth(ctx context.Context, cmd commands.Command, dir string, quiet bool) (stdout, stderr string, code int) {
	var out, errOut bytes.Buffer
	env := &commands.Env{
		Config: &config.Config{Dir: dir, Quiet: quiet},
		Log:    logging.Discard(),
		Out:    &out,
		ErrOut: &errOut,
	}
	code = cmd.Run(ctx, env, nil)
	return out.String(), errOut.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	stdout, stderr, code := runAuth(context.Background(), &commands.LoginCmd{}, t.TempDir(), false)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "oauth_client.json not found") {
		t.Errorf("expected missing client message, got %q", stderr)
	}
}

// A stored token that cannot be refreshed must not count as logged in.
func TestLoginCommand_UnusableTokenStartsLogin(t *testing.T) {
	tokens := map[string]string{
		"no refresh token": `{"access_token":"expired","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`,
		"corrupt":          `{not json`,
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			dir := authDir(t, map[string]string{
				config.OAuthClientFile: testOAuthClient,
				config.TokenFile:       token,
			})

			// Cancelled up front so the callback wait returns at once.
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, stderr, code := runAuth(ctx, &commands.LoginCmd{}, dir, false)
			if stdout == "already logged in\n" {
				t.Error("should not report already logged in")
			}
			if code != exitcode.AuthError {
				t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
			}
			if !strings.Contains(stderr, "Open this URL") {
				t.Errorf("expected auth URL prompt, got %q", stderr)
			}
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := authDir(t, map[string]string{
		config.OAuthClientFile: testOAuthClient,
		config.TokenFile:       `{"access_token":"test","refresh_token":"test"}`,
	})

	stdout, stderr, code := runAuth(context.Background(), &commands.LogoutCmd{}, dir, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" || stdout != "ok\n" {
		t.Errorf("expected ok, got stdout %q stderr %q", stdout, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, config.TokenFile)); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, config.OAuthClientFile)); err != nil {
		t.Error("oauth_client.json should be kept")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		quiet bool
		want  string
	}{
		{false, "not logged in\n"},
		{true, ""},
	}
	for _, tt := range tests {
		stdout, stderr, code := runAuth(context.Background(), &commands.LogoutCmd{}, t.TempDir(), tt.quiet)
		if code != exitcode.Success {
			t.Errorf("quiet=%v: expected exit code %d, got %d", tt.quiet, exitcode.Success, code)
		}
		if stderr != "" {
			t.Errorf("quiet=%v: expected no stderr, got %q", tt.quiet, stderr)
		}
		if stdout != tt.want {
			t.Errorf("quiet=%v: expected %q, got %q", tt.quiet, tt.want, stdout)
		}
	}
}
