package tool

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/pkg/tools"
)

type ListCommand struct {
	*base.Command
	Tools *tools.Registry

	flagFormat string
}

func (c *ListCommand) Synopsis() string {
	return "List the available tools"
}

func (c *ListCommand) Help() string {
	return `Usage: boxkit tool list [options]

  List every tool with its description.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("tool list", flag.ContinueOnError))

	f.StringVar(
		&c.flagFormat, "format", "",
		"Output format (json, yaml); a plain table when empty",
	)

	return f
}

func (c *ListCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 1
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	list := c.Tools.List()
	if c.flagFormat == "" {
		width := 0
		for _, t := range list {
			width = max(width, len(t.Name))
		}
		for _, t := range list {
			c.UI.Output(fmt.Sprintf("%s%s  %s", t.Name, strings.Repeat(" ", width-len(t.Name)), t.Description))
		}
		return 0
	}

	out := make([]map[string]string, 0, len(list))
	for _, t := range list {
		out = append(out, map[string]string{"name": t.Name, "description": t.Description})
	}
	if err := c.Render(c.flagFormat, out); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
