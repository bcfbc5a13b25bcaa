package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/pkg/toolkit"
)

type WhoAmICommand struct {
	*base.Command

	flagFormat string
}

func (c *WhoAmICommand) Synopsis() string {
	return "Show the authenticated Box user"
}

func (c *WhoAmICommand) Help() string {
	return `Usage: boxkit auth whoami [options]

  Print the user the configured credentials act as.` + c.Flags().Help()
}

func (c *WhoAmICommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("auth whoami")

	f.StringVar(
		&c.flagFormat, "format", base.FormatJSON,
		"Output format (json, yaml)",
	)

	return f
}

func (c *WhoAmICommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 1
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	client, err := c.Client(ctx, cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	user, err := toolkit.WhoAmI(ctx, client)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.Render(c.flagFormat, user); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
