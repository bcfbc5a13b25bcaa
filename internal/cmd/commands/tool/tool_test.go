package tool

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
	"github.com/hashicorp-forge/boxkit/pkg/tools"
)

// newTestBase returns a command base whose config points at a fake Box
// API served by mux.
func newTestBase(t *testing.T, mux *http.ServeMux) (*base.Command, *cli.MockUi) {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ui := cli.NewMockUi()
	b := base.NewCommand(hclog.NewNullLogger(), ui)
	b.Fs = afero.NewMemMapFs()

	cfg := fmt.Sprintf(`
box {
  base_url    = %q
  upload_url  = %q
  max_retries = 1
  retry_delay = "1ms"
}

auth {
  type  = "token"
  token = "test-token"
}
`, srv.URL, srv.URL+"/upload")
	require.NoError(t, afero.WriteFile(b.Fs, "/boxkit.hcl", []byte(cfg), 0o600))
	return b, ui
}

func TestListCommand(t *testing.T) {
	b, ui := newTestBase(t, http.NewServeMux())
	c := &ListCommand{Command: b, Tools: tools.Default()}

	require.Equal(t, 0, c.Run(nil))
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "file_info")
	assert.Contains(t, out, "Get the details of a file.")

	b, ui = newTestBase(t, http.NewServeMux())
	c = &ListCommand{Command: b, Tools: tools.Default()}
	require.Equal(t, 0, c.Run([]string{"-format=json"}))

	var list []map[string]string
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &list))
	assert.NotEmpty(t, list)
}

func TestSchemaCommand(t *testing.T) {
	b, ui := newTestBase(t, http.NewServeMux())
	c := &SchemaCommand{Command: b, Tools: tools.Default()}

	require.Equal(t, 0, c.Run([]string{"folder_create"}))

	var out struct {
		Name        string `json:"name"`
		InputSchema struct {
			Required []string `json:"required"`
		} `json:"input_schema"`
	}
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &out))
	assert.Equal(t, "folder_create", out.Name)
	assert.Contains(t, out.InputSchema.Required, "name")

	assert.Equal(t, 1, c.Run([]string{"nope"}))
	assert.Contains(t, ui.ErrorWriter.String(), "tool not found")
}

func TestCallCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type": "file", "id": r.PathValue("id"), "name": "report.pdf",
		})
	})

	t.Run("json args", func(t *testing.T) {
		b, ui := newTestBase(t, mux)
		c := &CallCommand{Command: b, Tools: tools.Default()}

		code := c.Run([]string{"-config=/boxkit.hcl", `-args={"file_id":"123"}`, "file_info"})
		require.Equal(t, 0, code, ui.ErrorWriter.String())

		var out map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &out))
		assert.Equal(t, "report.pdf", out["file_info"]["name"])
	})

	t.Run("args file and yaml", func(t *testing.T) {
		b, ui := newTestBase(t, mux)
		require.NoError(t, afero.WriteFile(b.Fs, "/args.json", []byte(`{"file_id":"9"}`), 0o600))
		c := &CallCommand{Command: b, Tools: tools.Default()}

		code := c.Run([]string{"-config=/boxkit.hcl", "-args-file=/args.json", "-format=yaml", "file_info"})
		require.Equal(t, 0, code, ui.ErrorWriter.String())
		assert.Contains(t, ui.OutputWriter.String(), "name: report.pdf")
	})

	t.Run("tool error", func(t *testing.T) {
		b, ui := newTestBase(t, mux)
		c := &CallCommand{Command: b, Tools: tools.Default()}

		code := c.Run([]string{"-config=/boxkit.hcl", "file_info"})
		assert.Equal(t, 1, code)

		var out map[string]string
		require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &out))
		assert.Contains(t, out["error"], "file_id")
	})

	t.Run("bad args", func(t *testing.T) {
		b, ui := newTestBase(t, mux)
		c := &CallCommand{Command: b, Tools: tools.Default()}

		code := c.Run([]string{"-config=/boxkit.hcl", "-args=[1]", "file_info"})
		assert.Equal(t, 1, code)
		assert.Contains(t, ui.ErrorWriter.String(), "JSON object")
	})

	t.Run("unknown tool", func(t *testing.T) {
		b, ui := newTestBase(t, mux)
		c := &CallCommand{Command: b, Tools: tools.Default()}

		assert.Equal(t, 1, c.Run([]string{"file_teleport"}))
		assert.Contains(t, ui.ErrorWriter.String(), "tool not found")
	})
}
