package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"meeting-summarizer/internal/app"
	"meeting-summarizer/internal/console"
	"meeting-summarizer/internal/summarizer"
)

var errUsage = errors.New("expected exactly one meeting minutes file")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], console.Printer{Out: os.Stdout, Err: os.Stderr}, app.Build)
	stop()
	os.Exit(code)
}

// run executes one summarization and returns the process exit code.
// Handled failures and interrupts exit 0; a failed startup check exits 1.
func run(ctx context.Context, args []string, p console.Printer, build func() (app.Deps, error)) (code int) {
	log := slog.Default()
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic recovered", "panic", rec, "stack", string(debug.Stack()))
			summarizer.Report(p, fmt.Errorf("%v", rec))
			code = 0
		}
	}()

	file, model, err := parseArgs(args, p.Err)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	deps, err := build()
	if err != nil {
		log.Error("failed to build dependencies", "err", err)
		p.Error("Error: " + err.Error())
		return 1
	}
	if model == "" {
		model = deps.Config.LLMModel
	}
	log = deps.Log.With("model", model)

	checkCtx, cancel := context.WithTimeout(ctx, deps.Config.StartupTimeout)
	err = summarizer.CheckCapability(checkCtx, deps.LLM, model)
	cancel()
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			summarizer.Report(p, &summarizer.Error{Kind: summarizer.KindInterrupted, Err: ctx.Err()})
			return 0
		}
		log.Error("startup check failed", "err", err)
		summarizer.Report(p, err)
		return 1
	}

	s := summarizer.New(deps.LLM, log,
		summarizer.WithDefaultModel(deps.Config.LLMModel),
		summarizer.WithTimeout(deps.Config.RequestTimeout),
		summarizer.WithMaxInputSize(deps.Config.MaxInputSize),
		summarizer.WithPrinter(p),
	)
	if _, err := s.Summarize(ctx, file, model); err != nil {
		log.Warn("summarization failed", "kind", summarizer.KindOf(err).String(), "err", err)
		summarizer.Report(p, err)
	}
	return 0
}

// parseArgs accepts flags before or after the file argument.
func parseArgs(args []string, stderr io.Writer) (file, model string, err error) {
	fs := flag.NewFlagSet("summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&model, "model", "", "Ollama model to use (default: $LLM_MODEL, or mistral)")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Summarize meeting minutes using a local LLM model via Ollama.")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Usage: summarize [--model NAME] <file>")
		fmt.Fprintln(fs.Output())
		fs.PrintDefaults()
	}

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return "", "", err
		}
		args = fs.Args()
		if len(args) == 0 {
			break
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
	if len(positional) != 1 {
		fmt.Fprintf(stderr, "error: %v\n\n", errUsage)
		fs.Usage()
		return "", "", errUsage
	}
	return positional[0], model, nil
}
