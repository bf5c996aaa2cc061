// Package cmdtest holds helpers for testing classbridge commands against a
// mock Classroom API.
package cmdtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/hashicorp-forge/classbridge/internal/cmd/base"
	"github.com/hashicorp-forge/classbridge/pkg/classroom/auth"
)

// AccessToken is the bearer token the stored session presents.
const AccessToken = "at-valid"

// WriteEnv writes a client secret, a valid token and a config file that
// points the adapter at endpoint. It returns the config file path.
func WriteEnv(t *testing.T, endpoint string) string {
	t.Helper()
	dir := t.TempDir()
	fs := afero.NewOsFs()

	credentials := filepath.Join(dir, "credentials.json")
	secret, err := json.Marshal(map[string]any{
		"installed": map[string]any{
			"client_id":     "client-id.apps.googleusercontent.com",
			"client_secret": "client-secret",
			"auth_uri":      "http://127.0.0.1:1/auth",
			"token_uri":     "http://127.0.0.1:1/token",
			"redirect_uris": []string{"http://localhost"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(credentials, secret, 0o600))

	token := filepath.Join(dir, "token.json")
	oauthCfg, err := auth.LoadClientConfig(fs, credentials, auth.DefaultScopes...)
	require.NoError(t, err)
	require.NoError(t, auth.NewTokenStore(fs, token, oauthCfg).Save(&oauth2.Token{
		AccessToken:  AccessToken,
		TokenType:    "Bearer",
		RefreshToken: "rt-valid",
		Expiry:       time.Now().Add(time.Hour),
	}))

	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
log_level = "error"

classroom {
  credentials_file   = %q
  token_file         = %q
  endpoint           = %q
  announcement_limit = 2
  verify_session     = false
}
`, credentials, token, endpoint)), 0o600))
	return path
}

// NewQuery returns a QueryCommand writing to a mock UI.
func NewQuery() (*base.QueryCommand, *cli.MockUi) {
	ui := cli.NewMockUi()
	return base.NewQueryCommand(base.NewCommand(hclog.NewNullLogger(), ui)), ui
}

// WriteJSON encodes v as a JSON response.
func WriteJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// WriteNotFound writes a Google API NOT_FOUND error.
func WriteNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 404, "message": "Requested entity was not found.", "status": "NOT_FOUND"},
	})
}
