package main

import (
	"context"
	"strings"
	"testing"

	"sentrim/internal/queue"
	"sentrim/internal/testsupport"
)

func TestQueueStatusAndList(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	testsupport.Enqueue(t, env.store, "alpha", "/in/alpha_original.wav", "/in/alpha_part1.wav")

	beta := testsupport.Enqueue(t, env.store, "beta", "/in/beta_original.wav", "")
	beta.SetFailed("whisperx crashed")
	if err := env.store.Update(ctx, beta); err != nil {
		t.Fatalf("beta failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "status"}, env.configPath)
	if err != nil {
		t.Fatalf("queue status: %v", err)
	}
	requireContains(t, out, "Pending")
	requireContains(t, out, "Failed")

	out, _, err = runCLI(t, []string{"queue", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "alpha")
	requireContains(t, out, "beta")

	out, _, err = runCLI(t, []string{"queue", "list", "--status", "failed"}, env.configPath)
	if err != nil {
		t.Fatalf("queue list --status failed: %v", err)
	}
	requireContains(t, out, "beta")
	if strings.Contains(out, "alpha") {
		t.Fatalf("expected only failed items, got %q", out)
	}
}

func TestQueueRetryAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx := context.Background()

	alpha := testsupport.Enqueue(t, env.store, "alpha", "/in/alpha_original.wav", "")
	alpha.SetFailed("boom")
	if err := env.store.Update(ctx, alpha); err != nil {
		t.Fatalf("alpha failed: %v", err)
	}

	out, _, err := runCLI(t, []string{"queue", "retry"}, env.configPath)
	if err != nil {
		t.Fatalf("queue retry: %v", err)
	}
	requireContains(t, out, "Requeued 1")

	requeued, err := env.store.GetByID(ctx, alpha.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if requeued.Status != queue.StatusPending {
		t.Fatalf("expected pending after retry, got %s", requeued.Status)
	}

	out, _, err = runCLI(t, []string{"queue", "clear", "--all"}, env.configPath)
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Removed 1")
}

func TestQueueHealth(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.Enqueue(t, env.store, "alpha", "/in/alpha_original.wav", "")

	out, _, err := runCLI(t, []string{"queue", "health"}, env.configPath)
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	requireContains(t, out, "Total")
	requireContains(t, out, "Pending")
}
