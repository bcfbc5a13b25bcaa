package tool

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/pkg/tools"
)

type SchemaCommand struct {
	*base.Command
	Tools *tools.Registry
}

func (c *SchemaCommand) Synopsis() string {
	return "Print the JSON schema of a tool's arguments"
}

func (c *SchemaCommand) Help() string {
	return `Usage: boxkit tool schema <name>

  Print the JSON schema describing the arguments of the named tool.`
}

func (c *SchemaCommand) Run(args []string) int {
	if len(args) != 1 {
		c.UI.Error("expected exactly one tool name")
		return 1
	}

	t, ok := c.Tools.Get(args[0])
	if !ok {
		c.UI.Error(fmt.Sprintf("%v: %s", tools.ErrToolNotFound, args[0]))
		return 1
	}

	out, err := json.MarshalIndent(map[string]any{
		"name":         t.Name,
		"description":  t.Description,
		"input_schema": t.InputSchema,
	}, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding schema: %v", err))
		return 1
	}
	c.UI.Output(string(out))
	return 0
}
