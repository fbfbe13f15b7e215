package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"cookie4/internal/app"
	"cookie4/internal/config"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" default:"withargs" help:"Run the board server"`
}

// ServeCmd holds flags that override the config file
type ServeCmd struct {
	Config string  `short:"c" default:"cookie4.hcl" type:"path" help:"HCL config file (defaults apply when missing)"`
	Addr   string  `help:"Listen address"`
	Seed   *uint64 `help:"Seed for the random board stream"`
	Debug  bool    `help:"Enable debug logging"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Address = c.Addr
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if c.Debug {
		cfg.LogLevel = "debug"
	}

	logger, err := app.NewLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}
	a, err := app.Boot(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cookie4"),
		kong.Description("Four-in-a-row board server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
