// Package ocr bridges to an external recognition process for image inputs.
// One process is spawned per call; it receives the file path as an argument
// and reports its result as a single JSON object on stdout:
//
//	{"fullText": "..."}   recognized text
//	{"error": "..."}      reported recognition failure
//
// Exit code 0 is required for either outcome to count as a structurally
// valid response; anything else is a subprocess failure.
package ocr

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"legalease-platform/internal/common"
)

// Recognizer converts an image file into text.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Bridge is the subprocess-backed Recognizer.
type Bridge struct {
	pythonBin string
	script    string
	timeout   time.Duration
	runner    Runner
	logger    *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithRunner substitutes the command runner, used by tests.
func WithRunner(r Runner) Option {
	return func(b *Bridge) { b.runner = r }
}

// WithTimeout bounds each recognition call. The child process is killed
// when the deadline passes.
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBridge creates a Bridge that spawns pythonBin with the given script.
func NewBridge(pythonBin, script string, logger *slog.Logger, opts ...Option) *Bridge {
	b := &Bridge{
		pythonBin: pythonBin,
		script:    script,
		timeout:   5 * time.Minute,
		runner:    execRunner{},
		logger:    logger,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

type scriptOutput struct {
	FullText string `json:"fullText"`
	Error    string `json:"error"`
}

// Recognize runs one recognition process for path and returns the trimmed
// recognized text. All stdout/stderr is collected before deciding.
func (b *Bridge) Recognize(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	stdout, _, err := b.runner.Run(ctx, b.pythonBin, b.logger, b.script, path)
	if err != nil {
		return "", common.WrapError(common.ErrSubprocess, "ocr process failed")
	}

	var out scriptOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		return "", common.WrapError(common.ErrSubprocess, "failed to parse ocr output")
	}
	if out.Error != "" {
		b.logger.Error("ocr reported failure", "path", path, "error", out.Error)
		return "", common.WrapError(common.ErrSubprocess, "ocr reported: "+out.Error)
	}

	return strings.TrimSpace(out.FullText), nil
}
