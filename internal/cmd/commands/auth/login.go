package auth

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/internal/config"
	"github.com/hashicorp-forge/boxkit/pkg/box"
)

type LoginCommand struct {
	*base.Command

	flagNoBrowser bool
	flagTimeout   time.Duration
}

func (c *LoginCommand) Synopsis() string {
	return "Authorize boxkit with the OAuth browser flow"
}

func (c *LoginCommand) Help() string {
	return `Usage: boxkit auth login [options]

  Open the Box consent page, wait for the redirect on the configured
  loopback URL and cache the resulting token. Requires an auth block of
  type "oauth".` + c.Flags().Help()
}

func (c *LoginCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("auth login")

	f.BoolVar(
		&c.flagNoBrowser, "no-browser", false,
		"Print the authorization URL instead of opening a browser",
	)
	f.DurationVar(
		&c.flagTimeout, "timeout", 5*time.Minute,
		"How long to wait for the authorization redirect",
	)

	return f
}

func (c *LoginCommand) Run(args []string) int {
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
	if cfg.Auth.Type != config.AuthOAuth {
		c.UI.Error(fmt.Sprintf("auth login requires oauth credentials, config uses %q", cfg.Auth.Type))
		return 1
	}
	boxCfg, err := cfg.BoxConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, c.flagTimeout)
	defer cancel()

	opts := box.AuthorizeOptions{Logger: c.Log.Named("auth")}
	if c.flagNoBrowser {
		opts.OpenURL = func(url string) error {
			c.UI.Output(fmt.Sprintf("Open this URL to authorize boxkit:\n\n  %s\n", url))
			return nil
		}
	}

	store := cfg.Auth.TokenStore(c.Fs)
	if _, err := box.AuthorizeApp(ctx, boxCfg, cfg.Auth.OAuth(), store, opts); err != nil {
		c.UI.Error(fmt.Sprintf("authorization failed: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Token saved to %s", store.Path))
	return 0
}
