package summarizer

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"meeting-summarizer/internal/console"
	"meeting-summarizer/internal/document"
	"meeting-summarizer/internal/llm"
)

const (
	DefaultModel          = "mistral"
	defaultRequestTimeout = 10 * time.Minute
	defaultMaxInputSize   = 10 << 20
	summarySuffix         = "_summary.txt"
)

// Summarizer turns a meeting-minutes file into a summary file.
type Summarizer struct {
	llm          llm.Client
	log          *slog.Logger
	printer      console.Printer
	defaultModel string
	timeout      time.Duration
	maxInputSize int64
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithDefaultModel sets the model used when Summarize gets an empty model.
func WithDefaultModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.defaultModel = model
		}
	}
}

// WithTimeout bounds each model call. Zero waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(s *Summarizer) {
		s.timeout = d
	}
}

// WithMaxInputSize rejects input files larger than n bytes.
func WithMaxInputSize(n int64) Option {
	return func(s *Summarizer) {
		s.maxInputSize = n
	}
}

// WithPrinter sets where the summary is echoed.
func WithPrinter(p console.Printer) Option {
	return func(s *Summarizer) {
		s.printer = p
	}
}

// New creates a Summarizer backed by client.
func New(client llm.Client, log *slog.Logger, opts ...Option) *Summarizer {
	s := &Summarizer{
		llm:          client,
		log:          log,
		printer:      console.Printer{Out: os.Stdout, Err: os.Stderr},
		defaultModel: DefaultModel,
		timeout:      defaultRequestTimeout,
		maxInputSize: defaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize reads filePath, asks model for a summary, writes it next to the
// input and echoes it. It returns the output path. On any failure it returns
// an *Error and leaves no output file behind.
func (s *Summarizer) Summarize(ctx context.Context, filePath, model string) (string, error) {
	if model == "" {
		model = s.defaultModel
	}
	log := s.log.With("path", filePath, "model", model)

	text, err := document.Load(filePath, s.maxInputSize, log)
	if err != nil {
		return "", loadError(filePath, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", &Error{Kind: KindEmptyInput, Path: filePath, Err: ErrEmptyInput}
	}

	prompt := BuildPrompt(text)
	log.Debug("requesting summary", "prompt_bytes", len(prompt))

	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	start := time.Now()
	resp, err := s.llm.Chat(reqCtx, llm.UserRequest(model, prompt))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", &Error{Kind: KindInterrupted, Model: model, Err: ctx.Err()}
		}
		return "", &Error{Kind: KindServiceError, Model: model, Err: err}
	}
	log.Info("model replied", "duration_ms", time.Since(start).Milliseconds())

	summary, err := resp.Content()
	if err != nil {
		return "", &Error{Kind: KindMalformedResponse, Model: model, Err: err}
	}

	outPath := OutputPath(filePath)
	if err := os.WriteFile(outPath, []byte(summary), 0o644); err != nil {
		return "", &Error{Kind: KindWriteFailed, Path: outPath, Err: err}
	}

	s.printer.Summary(summary, outPath)
	log.Info("summary written", "output", outPath, "bytes", len(summary))
	return outPath, nil
}

func (s *Summarizer) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

func loadError(path string, err error) error {
	kind := KindUnreadable
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindFileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermissionDenied
	}
	return &Error{Kind: kind, Path: path, Err: err}
}

// OutputPath replaces the extension of filePath with "_summary.txt".
// Leading dots of a hidden file do not start an extension.
func OutputPath(filePath string) string {
	dir, base := filepath.Split(filePath)
	ext := filepath.Ext(strings.TrimLeft(base, "."))
	return dir + strings.TrimSuffix(base, ext) + summarySuffix
}
