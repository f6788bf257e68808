package ocr

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"legalease-platform/internal/common"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.stdout, f.stderr, f.err
}

// blockingRunner waits for the context to expire, like a hung child process.
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	<-ctx.Done()
	return nil, nil, ctx.Err()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRecognizeSuccess(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(`{"fullText": "  Income Certificate No. 42  "}`)}
	b := NewBridge("python", "easyocr_script.py", testLogger(), WithRunner(runner))

	text, err := b.Recognize(context.Background(), "/tmp/scan.png")
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "Income Certificate No. 42" {
		t.Errorf("expected trimmed text, got %q", text)
	}
	if runner.gotName != "python" {
		t.Errorf("expected python binary, got %q", runner.gotName)
	}
	if len(runner.gotArgs) != 2 || runner.gotArgs[1] != "/tmp/scan.png" {
		t.Errorf("expected script and file path args, got %v", runner.gotArgs)
	}
}

func TestRecognizeReportedError(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(`{"error": "No image path provided."}`)}
	b := NewBridge("python", "easyocr_script.py", testLogger(), WithRunner(runner))

	_, err := b.Recognize(context.Background(), "/tmp/scan.png")
	if !errors.Is(err, common.ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess for reported error, got %v", err)
	}
}

func TestRecognizeUnparsableOutput(t *testing.T) {
	runner := &fakeRunner{stdout: []byte("Traceback (most recent call last):")}
	b := NewBridge("python", "easyocr_script.py", testLogger(), WithRunner(runner))

	_, err := b.Recognize(context.Background(), "/tmp/scan.png")
	if !errors.Is(err, common.ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess for unparsable output, got %v", err)
	}
}

func TestRecognizeNonzeroExit(t *testing.T) {
	// Even valid-looking output does not matter once the process exits nonzero.
	runner := &fakeRunner{
		stdout: []byte(`{"fullText": "partial"}`),
		err:    errors.New("exit status 1"),
	}
	b := NewBridge("python", "easyocr_script.py", testLogger(), WithRunner(runner))

	_, err := b.Recognize(context.Background(), "/tmp/scan.png")
	if !errors.Is(err, common.ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess for nonzero exit, got %v", err)
	}
}

func TestRecognizeTimeout(t *testing.T) {
	b := NewBridge("python", "easyocr_script.py", testLogger(),
		WithRunner(blockingRunner{}), WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := b.Recognize(context.Background(), "/tmp/scan.png")
	if !errors.Is(err, common.ErrSubprocess) {
		t.Fatalf("expected ErrSubprocess on timeout, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout was not enforced")
	}
}
