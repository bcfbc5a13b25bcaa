package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/internal/cmd/commands/auth"
	"github.com/hashicorp-forge/boxkit/internal/cmd/commands/tool"
	"github.com/hashicorp-forge/boxkit/internal/cmd/commands/version"
	"github.com/hashicorp-forge/boxkit/pkg/tools"
)

// Commands is the mapping of all available boxkit commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)
	registry := tools.Default()

	Commands = map[string]cli.CommandFactory{
		"auth": func() (cli.Command, error) {
			return &auth.Command{Command: b}, nil
		},
		"auth login": func() (cli.Command, error) {
			return &auth.LoginCommand{Command: b}, nil
		},
		"auth whoami": func() (cli.Command, error) {
			return &auth.WhoAmICommand{Command: b}, nil
		},
		"tool": func() (cli.Command, error) {
			return &tool.Command{Command: b}, nil
		},
		"tool list": func() (cli.Command, error) {
			return &tool.ListCommand{Command: b, Tools: registry}, nil
		},
		"tool schema": func() (cli.Command, error) {
			return &tool.SchemaCommand{Command: b, Tools: registry}, nil
		},
		"tool call": func() (cli.Command, error) {
			return &tool.CallCommand{Command: b, Tools: registry}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
