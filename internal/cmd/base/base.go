package base

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/boxkit/internal/config"
	"github.com/hashicorp-forge/boxkit/pkg/box"
)

// Command holds what every subcommand shares.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs backs the config file, the OAuth token cache and file transfers.
	Fs afero.Fs

	flagConfig   string
	flagLogLevel string
}

// NewCommand returns a Command on the OS filesystem.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{Log: log, UI: ui, Fs: afero.NewOsFs()}
}

// FlagSet wraps flag.FlagSet to render help text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Output is discarded so errors surface through the UI.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help renders the flags in the style of cli usage text.
func (f *FlagSet) Help() string {
	var b strings.Builder
	first := true
	f.VisitAll(func(fl *flag.Flag) {
		if first {
			b.WriteString("\n\nOptions:\n")
			first = false
		}
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})
	return b.String()
}

// NewFlagSet returns a flag set carrying the shared -config and
// -log-level flags.
func (c *Command) NewFlagSet(name string) *FlagSet {
	f := NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	f.StringVar(
		&c.flagConfig, "config", "",
		"[BOXKIT_CONFIG] Path to the HCL config file; BOX_* variables are used when empty",
	)
	f.StringVar(
		&c.flagLogLevel, "log-level", "",
		"[BOX_LOG_LEVEL] Log level (trace, debug, info, warn, error)",
	)
	return f
}

// LoadConfig reads and validates the configuration and applies its log
// level.
func (c *Command) LoadConfig() (*config.Config, error) {
	path := c.flagConfig
	if path == "" {
		path = os.Getenv("BOXKIT_CONFIG")
	}

	cfg, err := config.Load(c.Fs, path)
	if err != nil {
		return nil, err
	}
	if c.flagLogLevel != "" {
		cfg.LogLevel = c.flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.LogLevel != "" {
		c.Log.SetLevel(hclog.LevelFromString(cfg.LogLevel))
	}
	return cfg, nil
}

// Client builds an authenticated Box client from cfg.
func (c *Command) Client(ctx context.Context, cfg *config.Config) (*box.Client, error) {
	boxCfg, err := cfg.BoxConfig()
	if err != nil {
		return nil, err
	}
	ts, err := cfg.TokenSource(ctx, c.Fs)
	if err != nil {
		return nil, fmt.Errorf("error building credentials: %w", err)
	}
	return box.New(boxCfg, ts, box.WithLogger(c.Log.Named("box")))
}
