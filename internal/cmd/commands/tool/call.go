package tool

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/boxkit/internal/cmd/base"
	"github.com/hashicorp-forge/boxkit/pkg/tools"
)

type CallCommand struct {
	*base.Command
	Tools *tools.Registry

	flagArgs     string
	flagArgsFile string
	flagFormat   string
}

func (c *CallCommand) Synopsis() string {
	return "Call a tool against Box"
}

func (c *CallCommand) Help() string {
	return `Usage: boxkit tool call [options] <name>

  Call the named tool with JSON arguments and print its result. Failures
  are printed as {"error": "..."} and exit with status 1.

  Example:

    boxkit tool call -args='{"folder_id": "0"}' folder_items_list` + c.Flags().Help()
}

func (c *CallCommand) Flags() *base.FlagSet {
	f := c.NewFlagSet("tool call")

	f.StringVar(
		&c.flagArgs, "args", "",
		"Tool arguments as a JSON object",
	)
	f.StringVar(
		&c.flagArgsFile, "args-file", "",
		"Read the tool arguments from a JSON file",
	)
	f.StringVar(
		&c.flagFormat, "format", base.FormatJSON,
		"Output format (json, yaml)",
	)

	return f
}

func (c *CallCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 1
		}
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		c.UI.Error("expected exactly one tool name")
		return 1
	}
	name := f.Arg(0)
	if _, ok := c.Tools.Get(name); !ok {
		c.UI.Error(fmt.Sprintf("%v: %s", tools.ErrToolNotFound, name))
		return 1
	}

	toolArgs, err := c.readArgs()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	cfg, err := c.LoadConfig()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := c.Client(ctx, cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.Log.Debug("calling tool", "name", name)
	result, callErr := c.Tools.Call(ctx, client, name, toolArgs)
	if err := c.Render(c.flagFormat, tools.CallResult(result, callErr)); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if callErr != nil {
		return 1
	}
	return 0
}

func (c *CallCommand) readArgs() (map[string]any, error) {
	raw := []byte(c.flagArgs)
	if c.flagArgsFile != "" {
		if c.flagArgs != "" {
			return nil, fmt.Errorf("-args and -args-file are mutually exclusive")
		}
		data, err := afero.ReadFile(c.Fs, c.flagArgsFile)
		if err != nil {
			return nil, fmt.Errorf("error reading args file: %w", err)
		}
		raw = data
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("tool arguments must be a JSON object: %w", err)
	}
	return args, nil
}
