package menu

import (
	"strings"
	"testing"
)

func TestSystemInfoAction(t *testing.T) {
	res, err := SystemInfoAction(Env{}, Option{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Output, "Architecture") {
		t.Fatalf("expected architecture row, got:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "CPU cores") {
		t.Fatalf("expected cpu row, got:\n%s", res.Output)
	}
}

func TestDiskUsageAction(t *testing.T) {
	res, err := DiskUsageAction(Env{}, Option{})
	if err != nil {
		t.Skipf("df unavailable: %v", err)
	}
	if !strings.Contains(res.Output, "FILESYSTEM") {
		t.Fatalf("expected header row, got:\n%s", res.Output)
	}
	if res.Notice == "" {
		t.Fatalf("expected filesystem count notice")
	}
}
