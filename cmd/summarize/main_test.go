package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"meeting-summarizer/internal/app"
	"meeting-summarizer/internal/config"
	"meeting-summarizer/internal/console"
	"meeting-summarizer/internal/llm"
)

func newTestDeps(l llm.Client) func() (app.Deps, error) {
	return func() (app.Deps, error) {
		return app.Deps{
			LLM: l,
			Config: config.Config{
				LLMModel:       "mistral",
				RequestTimeout: time.Minute,
				StartupTimeout: time.Second,
				MaxInputSize:   1 << 20,
			},
			Log: slog.New(slog.NewTextHandler(io.Discard, nil)),
		}, nil
	}
}

func contentResponse(content string) llm.Response {
	return llm.Response{Model: "mistral", Message: &llm.Message{Role: "assistant", Content: &content}}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFile  string
		wantModel string
		wantErr   bool
	}{
		{name: "file only", args: []string{"notes.txt"}, wantFile: "notes.txt"},
		{name: "flag before", args: []string{"--model", "llama3.2", "notes.txt"}, wantFile: "notes.txt", wantModel: "llama3.2"},
		{name: "flag after", args: []string{"notes.txt", "--model=phi3"}, wantFile: "notes.txt", wantModel: "phi3"},
		{name: "missing file", args: []string{"--model", "phi3"}, wantErr: true},
		{name: "two files", args: []string{"a.txt", "b.txt"}, wantErr: true},
		{name: "unknown flag", args: []string{"--verbose", "notes.txt"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, model, err := parseArgs(tt.args, io.Discard)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if file != tt.wantFile || model != tt.wantModel {
				t.Errorf("got (%q, %q), want (%q, %q)", file, model, tt.wantFile, tt.wantModel)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		args       func(dir string) []string
		setup      func(dir string, l *llm.MockClient)
		build      func(l *llm.MockClient) func() (app.Deps, error)
		wantCode   int
		wantStdout string
		wantStderr string
		wantOutput string // expected summary file contents, "" for none
	}{
		{
			name: "summary written",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"mistral:latest"}, nil).Once()
				l.On("Chat", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
					return req.Model == "mistral" && strings.Contains(req.Messages[0].Content, "ship Friday")
				})).Return(contentResponse("- Alice ships Friday"), nil).Once()
			},
			wantCode:   0,
			wantStdout: "- Alice ships Friday",
			wantOutput: "- Alice ships Friday",
		},
		{
			name: "model flag overrides config",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt"), "--model", "phi3"} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"phi3:latest"}, nil).Once()
				l.On("Chat", mock.Anything, mock.MatchedBy(func(req llm.ChatRequest) bool {
					return req.Model == "phi3"
				})).Return(contentResponse("done"), nil).Once()
			},
			wantCode:   0,
			wantOutput: "done",
		},
		{
			name: "service unreachable exits before reading input",
			args: func(dir string) []string { return []string{filepath.Join(dir, "missing.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return(nil, &llm.ServiceError{Err: errors.New("connection refused")}).Once()
			},
			wantCode:   1,
			wantStderr: "ollama serve",
		},
		{
			name: "model not pulled",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"llama3.2:latest"}, nil).Once()
			},
			wantCode:   1,
			wantStderr: "ollama pull mistral",
		},
		{
			name: "missing input is reported",
			args: func(dir string) []string { return []string{filepath.Join(dir, "missing.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"mistral:latest"}, nil).Once()
			},
			wantCode:   0,
			wantStderr: "was not found",
		},
		{
			name: "service error is reported",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"mistral:latest"}, nil).Once()
				l.On("Chat", mock.Anything, mock.Anything).
					Return(llm.Response{}, &llm.ServiceError{Model: "mistral", StatusCode: 500, Err: errors.New("model crashed")}).Once()
			},
			wantCode:   0,
			wantStderr: "Ollama Error",
		},
		{
			name: "panic is recovered",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			setup: func(dir string, l *llm.MockClient) {
				l.On("Models", mock.Anything).Return([]string{"mistral:latest"}, nil).Once()
				l.On("Chat", mock.Anything, mock.Anything).Panic("boom").Once()
			},
			wantCode:   0,
			wantStderr: "Unexpected error: boom",
		},
		{
			name:     "usage error",
			args:     func(dir string) []string { return nil },
			wantCode: 2,
		},
		{
			name:     "help",
			args:     func(dir string) []string { return []string{"-h"} },
			wantCode: 0,
		},
		{
			name: "panic while building dependencies is recovered",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			build: func(*llm.MockClient) func() (app.Deps, error) {
				return func() (app.Deps, error) { panic("env exploded") }
			},
			wantCode:   0,
			wantStderr: "Unexpected error: env exploded",
		},
		{
			name: "invalid configuration",
			args: func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			build: func(*llm.MockClient) func() (app.Deps, error) {
				return func() (app.Deps, error) { return app.Deps{}, errors.New("invalid configuration") }
			},
			wantCode:   1,
			wantStderr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("Alice: we ship Friday."), 0o644); err != nil {
				t.Fatal(err)
			}
			mockLLM := new(llm.MockClient)
			if tt.setup != nil {
				tt.setup(dir, mockLLM)
			}
			build := newTestDeps(mockLLM)
			if tt.build != nil {
				build = tt.build(mockLLM)
			}

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args(dir), console.Printer{Out: &stdout, Err: &stderr}, build)

			if code != tt.wantCode {
				t.Errorf("run() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr.String())
			}

			data, err := os.ReadFile(filepath.Join(dir, "notes_summary.txt"))
			if tt.wantOutput == "" {
				if err == nil {
					t.Errorf("expected no summary file, got %q", data)
				}
			} else if string(data) != tt.wantOutput {
				t.Errorf("summary file = %q, want %q (err %v)", data, tt.wantOutput, err)
			}

			mockLLM.AssertExpectations(t)
		})
	}
}

func TestRunInterruptedDuringStartupCheck(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mockLLM := new(llm.MockClient)
	mockLLM.On("Models", mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, &llm.ServiceError{Err: context.Canceled}).Once()

	var stderr bytes.Buffer
	code := run(ctx, []string{"notes.txt"}, console.Printer{Out: io.Discard, Err: &stderr}, newTestDeps(mockLLM))

	if code != 0 {
		t.Errorf("expected clean exit on interrupt, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Process interrupted by user") {
		t.Errorf("missing interrupt message:\n%s", stderr.String())
	}
}
