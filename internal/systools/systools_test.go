package systools

import (
	"context"
	"strings"
	"testing"
)

func TestRunCapturesOutput(t *testing.T) {
	out, err := Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Fatalf("expected hello, got %q", out)
	}
}

func TestRunReportsStderr(t *testing.T) {
	_, err := Run(context.Background(), "ls", "/no/such/systools-test-path")
	if err == nil {
		t.Fatalf("expected error for missing path")
	}
	if !strings.Contains(err.Error(), "ls:") {
		t.Fatalf("expected error to name the utility, got %v", err)
	}
}

func TestRunHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, "echo", "hello"); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestLenientIgnoresExitStatus(t *testing.T) {
	out := Lenient(context.Background(), "sh", "-c", "echo partial; exit 3")
	if out != "partial" {
		t.Fatalf("expected partial output despite failure, got %q", out)
	}
}

func TestHave(t *testing.T) {
	if !Have("sh") {
		t.Fatalf("expected sh to be installed")
	}
	if Have("modeterm-no-such-utility") {
		t.Fatalf("expected missing utility to be reported absent")
	}
}
