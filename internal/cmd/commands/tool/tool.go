package tool

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect and call agent tools"
}

func (c *Command) Help() string {
	return `Usage: boxkit tool <subcommand> [options] [args]

  This command groups subcommands for the Box tools exposed to agents.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
