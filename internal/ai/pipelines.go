// Package ai holds the process-wide cache of generative model handles. The
// summarizer and clause explainer are constructed lazily on first use, and
// the in-flight construction itself is shared: N concurrent first callers
// trigger exactly one construction and all await the same completion.
package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"legalease-platform/internal/common"
	"legalease-platform/internal/logger"
)

// maxInputChars bounds the text handed to a model. Longer inputs are
// truncated to this prefix before inference.
const maxInputChars = 4000

const explainTemplate = `You are an expert AI assistant that simplifies legal documents.
Your task is to rewrite the following legal clause in simple, easy-to-understand language.
Focus on the most important point of the clause and present it concisely.
Do not repeat or include any unnecessary information.

Document Context:
%s

Clause to Simplify:
%s`

const summarizeTemplate = `Summarize the following document concisely, preserving key facts,
names, amounts, dates and obligations. Write for a reader with no legal background.

Document:
%s`

// PipelineCache lazily constructs and memoizes the model handles.
type PipelineCache struct {
	factory Factory
	timeout time.Duration

	mu      sync.Mutex
	entries map[string]*entry

	constructions atomic.Int64
}

type entry struct {
	ready chan struct{}
	gen   Generator
	err   error
}

// CacheOption configures a PipelineCache.
type CacheOption func(*PipelineCache)

// WithCallTimeout bounds each inference call. Zero means no bound beyond the
// caller's context.
func WithCallTimeout(d time.Duration) CacheOption {
	return func(c *PipelineCache) { c.timeout = d }
}

// NewPipelineCache creates an empty cache over the given factory.
func NewPipelineCache(factory Factory, opts ...CacheOption) *PipelineCache {
	c := &PipelineCache{
		factory: factory,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PipelineCache) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// handle returns the cached generator for task, constructing it if this is
// the first request. Concurrent first callers share one construction; a
// failed construction is not cached, so a later call may try again.
func (c *PipelineCache) handle(ctx context.Context, task string) (Generator, error) {
	c.mu.Lock()
	e, ok := c.entries[task]
	if ok {
		c.mu.Unlock()
		select {
		case <-e.ready:
			return e.gen, e.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e = &entry{ready: make(chan struct{})}
	c.entries[task] = e
	c.mu.Unlock()

	c.constructions.Add(1)
	gen, err := c.factory(ctx, task)

	c.mu.Lock()
	e.gen, e.err = gen, err
	// The map may have been swapped by Close while the factory ran; only
	// touch the slot if this entry still owns it.
	if err != nil && c.entries[task] == e {
		delete(c.entries, task)
	}
	c.mu.Unlock()
	close(e.ready)

	return gen, err
}

// Constructions reports how many times the factory has run, for tests and
// diagnostics.
func (c *PipelineCache) Constructions() int64 {
	return c.constructions.Load()
}

// Close tears down every constructed handle and empties the cache. Intended
// for shutdown and test isolation; the next call reconstructs. Constructions
// still in flight are waited for and their handles closed too, so nothing
// built against the old cache outlives it.
func (c *PipelineCache) Close() error {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[string]*entry)
	c.mu.Unlock()

	var firstErr error
	for task, e := range entries {
		<-e.ready
		if e.gen != nil {
			if err := e.gen.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close %s: %w", task, err)
			}
		}
	}
	return firstErr
}

// Summarize generates a summary of text. Input is truncated to a bounded
// prefix before inference. Empty input or an empty model response is a
// model error.
func (c *PipelineCache) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", common.WrapError(common.ErrModel, "input text is empty")
	}

	gen, err := c.handle(ctx, TaskSummarize)
	if err != nil {
		return "", common.WrapError(common.ErrModel, "summarizer unavailable")
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	prompt := fmt.Sprintf(summarizeTemplate, truncateRunes(text, maxInputChars))
	out, err := gen.Generate(callCtx, prompt)
	if err != nil {
		logger.Error("summarization failed", "error", err)
		return "", common.WrapError(common.ErrModel, "failed to generate summary")
	}

	summary := strings.TrimSpace(out)
	if summary == "" {
		return "", common.WrapError(common.ErrModel, "summarizer returned no usable output")
	}
	return summary, nil
}

// Explain rewrites clause in plain language, grounded in fullText. Both
// inputs are required; the context is truncated to the same bound as
// summarization. Any echo of the instruction template is stripped from the
// raw output.
func (c *PipelineCache) Explain(ctx context.Context, clause, fullText string) (string, error) {
	if strings.TrimSpace(clause) == "" || strings.TrimSpace(fullText) == "" {
		return "", common.WrapError(common.ErrModel, "missing clause or document context")
	}

	gen, err := c.handle(ctx, TaskExplain)
	if err != nil {
		return "", common.WrapError(common.ErrModel, "explainer unavailable")
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	prompt := fmt.Sprintf(explainTemplate, truncateRunes(fullText, maxInputChars), clause)
	out, err := gen.Generate(callCtx, prompt)
	if err != nil {
		logger.Error("clause explanation failed", "error", err)
		return "", common.WrapError(common.ErrModel, "failed to generate explanation")
	}

	explanation := strings.TrimSpace(strings.ReplaceAll(out, prompt, ""))
	if explanation == "" {
		return "", common.WrapError(common.ErrModel, "explainer returned no usable output")
	}
	return explanation, nil
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
