package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
)

func writeConfig(t *testing.T, fs afero.Fs, src string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "/boxkit.hcl", []byte(src), 0o600))
}

func TestWhoAmICommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type": "user", "id": "7", "name": "Ada", "login": "ada@example.com",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ui := cli.NewMockUi()
	b := base.NewCommand(hclog.NewNullLogger(), ui)
	b.Fs = afero.NewMemMapFs()
	writeConfig(t, b.Fs, fmt.Sprintf(`
box {
  base_url = %q
}

auth {
  type  = "token"
  token = "test-token"
}
`, srv.URL))

	c := &WhoAmICommand{Command: b}
	require.Equal(t, 0, c.Run([]string{"-config=/boxkit.hcl"}), ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "ada@example.com")
}

func TestLoginCommand_RequiresOAuth(t *testing.T) {
	ui := cli.NewMockUi()
	b := base.NewCommand(hclog.NewNullLogger(), ui)
	b.Fs = afero.NewMemMapFs()
	writeConfig(t, b.Fs, `
auth {
  type  = "token"
  token = "test-token"
}
`)

	c := &LoginCommand{Command: b}
	assert.Equal(t, 1, c.Run([]string{"-config=/boxkit.hcl"}))
	assert.Contains(t, ui.ErrorWriter.String(), "requires oauth credentials")
}
