package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"scopereport/app"
	"scopereport/internal"
	"scopereport/internal/config"
	"scopereport/internal/container"
	"scopereport/internal/errors"
	"scopereport/internal/scope"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errors.CodeConfigInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run generates the report. Configuration and usage problems come back as
// CONFIG_INVALID.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scope_report_gen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "output file path (default $REPORT_OUTPUT or "+scope.DefaultFileName+")")
	format := fs.String("format", "", "comma separated formats: docx, xlsx, md, html (default inferred from -out)")
	in := fs.String("in", "", "optional .md or .yaml report definition replacing the built-in content")
	if err := fs.Parse(args); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if fs.NArg() > 0 {
		return errors.ConfigInvalid("unexpected arguments: " + strings.Join(fs.Args(), " "))
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if err := cfg.ApplyFlags(*out, *format, *in); err != nil {
		return err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level), stderr)

	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "error initialising")
	}
	defer c.Close()

	doc, err := c.LoadDocument()
	if err != nil {
		return errors.Wrap(err, "error loading report")
	}

	outputs, err := c.ReportService.Generate(ctx, doc, app.BuildTargets(cfg.Output.Path, cfg.Output.Formats))
	if err != nil {
		return errors.Wrap(err, "error generating report")
	}

	for _, o := range outputs {
		fmt.Fprintf(stdout, "Saved: %s\n", o.Path)
	}
	return nil
}
