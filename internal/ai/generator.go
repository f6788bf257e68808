package ai

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"

	"legalease-platform/internal/logger"
)

// Task names for the two pipeline handles.
const (
	TaskSummarize = "summarization"
	TaskExplain   = "explanation"
)

// Generator produces text from a prompt. It is the narrow port the pipeline
// cache holds, so tests can substitute an in-process fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// Factory constructs the Generator for a named task. Construction is the
// expensive step the cache exists to share.
type Factory func(ctx context.Context, task string) (Generator, error)

// RateLimits describes per-tier Gemini API quotas.
type RateLimits struct {
	RPM int // Requests per minute
	RPD int // Requests per day
}

func getRateLimits(tier string) RateLimits {
	switch tier {
	case "free":
		return RateLimits{RPM: 10, RPD: 250}
	case "tier1":
		return RateLimits{RPM: 1000, RPD: 10000}
	case "tier2":
		return RateLimits{RPM: 2000, RPD: 50000}
	default:
		return RateLimits{RPM: 10, RPD: 250}
	}
}

// geminiGenerator wraps one configured generative model behind a circuit
// breaker and a rate limiter.
type geminiGenerator struct {
	model       *genai.GenerativeModel
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	release     func() error
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := g.rateLimiter.Wait(ctx); err != nil {
		return "", err
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return "", err
	}

	resp := result.(*genai.GenerateContentResponse)
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					sb.WriteString(string(text))
				}
			}
		}
	}
	return sb.String(), nil
}

func (g *geminiGenerator) Close() error {
	if g.release != nil {
		return g.release()
	}
	return nil
}

// clientHandle shares one API client across generators and allows a fresh
// one to be dialed after the owner releases it.
type clientHandle struct {
	mu     sync.Mutex
	client *genai.Client
}

// acquire returns the live shared client, dialing one when none exists. The
// returned release func is non-nil only for the caller whose dial created
// the client; releasing closes it and clears the slot so the next acquire
// dials again.
func (h *clientHandle) acquire(ctx context.Context, dial func(context.Context) (*genai.Client, func() error, error)) (*genai.Client, func() error, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.client != nil {
		return h.client, nil, nil
	}

	client, closeClient, err := dial(ctx)
	if err != nil {
		return nil, nil, err
	}
	h.client = client

	release := func() error {
		h.mu.Lock()
		if h.client == client {
			h.client = nil
		}
		h.mu.Unlock()
		return closeClient()
	}
	return client, release, nil
}

// GeminiFactory builds per-task Gemini generators sharing one API client.
// The summarizer runs warmer with room for a full summary; the explainer is
// pinned to a low temperature and a short output bound so clause rewrites
// stay tight.
func GeminiFactory(apiKey, tier string) Factory {
	handle := &clientHandle{}

	return func(ctx context.Context, task string) (Generator, error) {
		client, release, err := handle.acquire(ctx, func(ctx context.Context) (*genai.Client, func() error, error) {
			c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
			if err != nil {
				return nil, nil, err
			}
			return c, c.Close, nil
		})
		if err != nil {
			return nil, err
		}

		model := client.GenerativeModel("gemini-2.0-flash")
		switch task {
		case TaskExplain:
			model.SetTemperature(0.5)
			model.SetMaxOutputTokens(256)
		default:
			model.SetTemperature(0.7)
			model.SetMaxOutputTokens(1024)
		}

		limits := getRateLimits(tier)

		breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "GeminiAPI/" + task,
			MaxRequests: 5,
			Interval:    10 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
			},
		})

		// RPM limit with some buffer
		rateLimiter := rate.NewLimiter(rate.Limit(float64(limits.RPM)*0.9/60.0), limits.RPM/10)

		return &geminiGenerator{
			model:       model,
			breaker:     breaker,
			rateLimiter: rateLimiter,
			release:     release,
		}, nil
	}
}
