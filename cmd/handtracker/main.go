package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/handtracker/internal/server"
	"github.com/lox/handtracker/internal/session"
)

type CLI struct {
	Config string `short:"c" help:"Session config file (HCL)" default:"session.hcl"`
	Debug  bool   `short:"d" help:"Enable debug logging"`

	Run   RunCmd   `cmd:"" default:"1" help:"Track a hand interactively from the terminal"`
	Serve ServeCmd `cmd:"" help:"Serve the hand over a websocket for external clients"`
}

type RunCmd struct{}

type ServeCmd struct {
	Addr string `help:"Listen address" default:"localhost:8090"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("handtracker"),
		kong.Description("Turn-sequencing tracker for a single live hand of hold'em."))

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := session.Load(cli.Config)
	if err != nil {
		logger.Fatal("failed to load session", "file", cli.Config, "error", err)
	}

	switch ctx.Command() {
	case "serve":
		err = runServe(cli.Serve, cfg, logger)
	default:
		err = runInteractive(cfg, logger)
	}
	if err != nil {
		logger.Fatal("exiting", "error", err)
	}
	ctx.Exit(0)
}

func runServe(cmd ServeCmd, cfg *session.Config, logger *log.Logger) error {
	eng := cfg.NewEngine()
	svc := server.NewService(eng, logger)
	srv := server.New(cmd.Addr, svc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logger.Info("shutting down")
		cancel()
	}()

	return srv.Run(ctx)
}
