package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("jobboardctl"),
		kong.Description("Job board database administration."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runCtx := &Context{
		Out:        os.Stdout,
		Logger:     logger,
		ConfigPath: cli.Config,
		Version:    version,
		BuildTime:  buildTime,
	}
	if err := kctx.Run(runCtx); err != nil {
		fmt.Fprintf(os.Stderr, "jobboardctl: %v\n", err)
		os.Exit(1)
	}
}
