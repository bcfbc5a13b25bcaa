package base

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes v to the UI as indented JSON or YAML.
func (c *Command) Render(format string, v any) error {
	var (
		out []byte
		err error
	)
	switch strings.ToLower(format) {
	case "", FormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(v)
	default:
		return fmt.Errorf("unsupported format %q, expected json or yaml", format)
	}
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	c.UI.Output(strings.TrimRight(string(out), "\n"))
	return nil
}
