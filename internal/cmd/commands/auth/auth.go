package auth

import (
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage Box credentials"
}

func (c *Command) Help() string {
	return `Usage: boxkit auth <subcommand> [options] [args]

  This command groups subcommands for authenticating with Box.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
