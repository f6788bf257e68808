package ai

import (
	"context"
	"testing"

	genai "github.com/google/generative-ai-go/genai"
)

func TestClientHandleSharesOneClient(t *testing.T) {
	h := &clientHandle{}
	dials := 0
	dial := func(ctx context.Context) (*genai.Client, func() error, error) {
		dials++
		return &genai.Client{}, func() error { return nil }, nil
	}

	first, release, err := h.acquire(context.Background(), dial)
	if err != nil {
		t.Fatal(err)
	}
	if release == nil {
		t.Fatal("dialing caller must receive the release func")
	}

	second, secondRelease, err := h.acquire(context.Background(), dial)
	if err != nil {
		t.Fatal(err)
	}
	if second != first {
		t.Error("second acquire must reuse the shared client")
	}
	if secondRelease != nil {
		t.Error("non-dialing caller must not receive a release func")
	}
	if dials != 1 {
		t.Errorf("dials = %d, want 1", dials)
	}
}

func TestClientHandleRedialsAfterRelease(t *testing.T) {
	h := &clientHandle{}
	dials := 0
	closes := 0
	dial := func(ctx context.Context) (*genai.Client, func() error, error) {
		dials++
		return &genai.Client{}, func() error { closes++; return nil }, nil
	}

	first, release, err := h.acquire(context.Background(), dial)
	if err != nil {
		t.Fatal(err)
	}
	if err := release(); err != nil {
		t.Fatal(err)
	}
	if closes != 1 {
		t.Fatalf("closes = %d, want 1", closes)
	}

	// A closed client must never be handed out again.
	fresh, freshRelease, err := h.acquire(context.Background(), dial)
	if err != nil {
		t.Fatal(err)
	}
	if fresh == first {
		t.Error("acquire after release returned the closed client")
	}
	if freshRelease == nil {
		t.Error("fresh dial must hand its caller the release func")
	}
	if dials != 2 {
		t.Errorf("dials = %d, want 2", dials)
	}
}

func TestClientHandleDialFailureLeavesSlotEmpty(t *testing.T) {
	h := &clientHandle{}
	fail := true
	dial := func(ctx context.Context) (*genai.Client, func() error, error) {
		if fail {
			return nil, nil, context.DeadlineExceeded
		}
		return &genai.Client{}, func() error { return nil }, nil
	}

	if _, _, err := h.acquire(context.Background(), dial); err == nil {
		t.Fatal("expected dial failure to surface")
	}

	fail = false
	client, _, err := h.acquire(context.Background(), dial)
	if err != nil {
		t.Fatal(err)
	}
	if client == nil {
		t.Error("retry after dial failure must succeed")
	}
}
