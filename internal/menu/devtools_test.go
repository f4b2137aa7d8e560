package menu

import (
	"database/sql"
	"net"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParsePortSpec(t *testing.T) {
	cases := []struct {
		spec string
		want []int
	}{
		{"3000", []int{3000}},
		{"3000,8080", []int{3000, 8080}},
		{"9000-9002", []int{9000, 9001, 9002}},
		{" 80 , 443 ", []int{80, 443}},
	}
	for _, tc := range cases {
		got, err := parsePortSpec(tc.spec)
		if err != nil {
			t.Fatalf("parsePortSpec(%q): unexpected error: %v", tc.spec, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("parsePortSpec(%q): expected %v, got %v", tc.spec, tc.want, got)
		}
	}
	for _, spec := range []string{"", "abc", "0", "70000", "90-80", "1-2000"} {
		if _, err := parsePortSpec(spec); err == nil {
			t.Fatalf("parsePortSpec(%q): expected error", spec)
		}
	}
}

func TestScanPortsFindsListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	open := scanPorts([]int{port})
	if len(open) != 1 || open[0] != port {
		t.Fatalf("expected port %d open, got %v", port, open)
	}
}

func TestScanPortsClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	if open := scanPorts([]int{port}); len(open) != 0 {
		t.Fatalf("expected no listeners, got %v", open)
	}
}

func TestMaskValue(t *testing.T) {
	if got := maskValue("HOME", "/home/user"); got != "/home/user" {
		t.Fatalf("expected plain value, got %q", got)
	}
	for _, name := range []string{"AWS_SECRET_ACCESS_KEY", "API_TOKEN", "DB_PASSWORD", "openai_key"} {
		if got := maskValue(name, "hush"); got != "****" {
			t.Fatalf("expected %s masked, got %q", name, got)
		}
	}
	long := strings.Repeat("x", 80)
	if got := maskValue("PATH", long); !strings.HasSuffix(got, "…") || len([]rune(got)) != 61 {
		t.Fatalf("expected truncated value, got %q", got)
	}
	if got := maskValue("EMPTY", ""); got != "" {
		t.Fatalf("expected empty value untouched, got %q", got)
	}
}

func TestEnvViewActionMasksSecrets(t *testing.T) {
	t.Setenv("MODETERM_TEST_SECRET_KEY", "hush-hush")
	res, err := EnvViewAction(Env{}, Option{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Output, "MODETERM_TEST_SECRET_KEY") {
		t.Fatalf("expected variable listed")
	}
	if strings.Contains(res.Output, "hush-hush") {
		t.Fatalf("expected secret masked, got output with raw value")
	}
	if !strings.Contains(res.Notice, "environment variables") {
		t.Fatalf("expected count notice, got %q", res.Notice)
	}
}

func TestFindDatabasesSkipsDependencyDirs(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	mustWrite("app.db")
	mustWrite("data/cache.sqlite")
	mustWrite("node_modules/dep/skip.db")
	mustWrite(".git/skip.db")
	mustWrite("notes.txt")

	paths, err := findDatabases(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 databases, got %v", paths)
	}
	joined := strings.Join(paths, "\n")
	if !strings.Contains(joined, "app.db") || !strings.Contains(joined, "cache.sqlite") {
		t.Fatalf("expected app.db and cache.sqlite, got %v", paths)
	}
}

func TestLoadDatabaseMenuEmpty(t *testing.T) {
	if _, err := loadDatabaseMenu(Env{WorkDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error when no databases exist")
	}
}

func TestDatabaseExploreAction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO users (name) VALUES ('ada'), ('.bee'), ('cy')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE sessions (id INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	res, err := DatabaseExploreAction(Env{}, Option{Value: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Output, "users") || !strings.Contains(res.Output, "3") {
		t.Fatalf("expected users table with 3 rows, got:\n%s", res.Output)
	}
	if !strings.Contains(res.Output, "sessions") || !strings.Contains(res.Output, "0") {
		t.Fatalf("expected empty sessions table, got:\n%s", res.Output)
	}
	if !strings.Contains(res.Notice, "2 tables") {
		t.Fatalf("expected table count in notice, got %q", res.Notice)
	}
}

func TestDiagnoseHostNeedsHostPort(t *testing.T) {
	if got := diagnoseHost("not-an-address"); got != "" {
		t.Fatalf("expected no diagnosis without host:port, got %q", got)
	}
	if got := diagnoseHost(":8080"); got != "" {
		t.Fatalf("expected no diagnosis for an empty host, got %q", got)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
		{5 << 30, "5.0 GB"},
	}
	for _, tc := range cases {
		if got := formatSize(tc.n); got != tc.want {
			t.Fatalf("formatSize(%d): expected %q, got %q", tc.n, tc.want, got)
		}
	}
}
