package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/huh"
	_ "modernc.org/sqlite"

	"github.com/modeterm/modeterm/internal/format/table"
	"github.com/modeterm/modeterm/internal/systools"
)

const (
	dialTimeout   = 3 * time.Second
	probeTimeout  = 500 * time.Millisecond
	maxCustomScan = 1024
	maxDBResults  = 50
)

// devPorts are the local development ports the quick scan probes.
var devPorts = []int{3000, 3001, 4000, 5000, 8000, 8001, 8080, 9000}

// systemPorts extend the full scan with well-known services.
var systemPorts = []int{21, 22, 23, 25, 53, 80, 110, 135, 139, 143, 443, 445, 993, 995}

func loadDevToolsMenu(Env) ([]Option, error) {
	return []Option{
		{Label: "Port scanner", Value: "ports", Help: "Probe local ports and name the listeners"},
		{Label: "Environment viewer", Value: "env", Help: "Show environment variables, secrets masked"},
		{Label: "Database explorer", Value: "db", Help: "Inspect SQLite files under the working directory"},
		{Label: "Connection tester", Value: "net", Help: "Check TCP reachability of a service"},
	}, nil
}

// PortScanAction probes localhost ports and reports the listeners.
func PortScanAction(Env, Option) (Result, error) {
	var scanType string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Scan type").
				Options(
					huh.NewOption("Quick: development ports", "quick"),
					huh.NewOption("Full: development and system ports", "full"),
					huh.NewOption("Custom: list or range", "custom"),
				).
				Value(&scanType),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}

	var ports []int
	switch scanType {
	case "quick":
		ports = append(ports, devPorts...)
	case "full":
		ports = append(ports, devPorts...)
		ports = append(ports, systemPorts...)
	case "custom":
		var spec string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Ports").
					Description("Comma-separated, ranges allowed: 3000,8080,9000-9010").
					Validate(func(s string) error {
						_, err := parsePortSpec(s)
						return err
					}).
					Value(&spec),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return Result{}, nil
			}
			return Result{}, err
		}
		parsed, err := parsePortSpec(spec)
		if err != nil {
			return Result{}, err
		}
		ports = parsed
	}
	sort.Ints(ports)
	ports = dedupeInts(ports)

	open := scanPorts(ports)
	if len(open) == 0 {
		return Result{Notice: fmt.Sprintf("No listeners on %d scanned ports", len(ports))}, nil
	}

	tbl := table.New("PORT", "PROCESS", "PID").Align(table.AlignRight)
	for _, port := range open {
		process, pid := portOwner(port)
		tbl.Row(strconv.Itoa(port), process, pid)
	}
	return Result{
		Notice: fmt.Sprintf("%d of %d ports listening", len(open), len(ports)),
		Output: tbl.Render(),
	}, nil
}

func scanPorts(ports []int) []int {
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		open []int
		sem  = make(chan struct{}, 64)
	)
	for _, port := range ports {
		wg.Add(1)
		sem <- struct{}{}
		go func(port int) {
			defer wg.Done()
			defer func() { <-sem }()
			conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", port), probeTimeout)
			if err != nil {
				return
			}
			conn.Close()
			mu.Lock()
			open = append(open, port)
			mu.Unlock()
		}(port)
	}
	wg.Wait()
	sort.Ints(open)
	return open
}

// portOwner names the process listening on the port, via lsof when it
// is installed.
func portOwner(port int) (process, pid string) {
	if !systools.Have("lsof") {
		return "-", "-"
	}
	out := systools.Lenient(context.Background(), "lsof", "-nP", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN")
	for i, line := range strings.Split(out, "\n") {
		if i == 0 {
			continue // header
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			return fields[0], fields[1]
		}
	}
	return "-", "-"
}

func parsePortSpec(spec string) ([]int, error) {
	var ports []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := parsePort(lo)
			if err != nil {
				return nil, err
			}
			end, err := parsePort(hi)
			if err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("range %s is reversed", part)
			}
			for p := start; p <= end; p++ {
				ports = append(ports, p)
			}
		} else {
			p, err := parsePort(part)
			if err != nil {
				return nil, err
			}
			ports = append(ports, p)
		}
		if len(ports) > maxCustomScan {
			return nil, fmt.Errorf("more than %d ports requested", maxCustomScan)
		}
	}
	if len(ports) == 0 {
		return nil, errors.New("no ports given")
	}
	return ports, nil
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || p < 1 || p > 65535 {
		return 0, fmt.Errorf("invalid port %q", strings.TrimSpace(s))
	}
	return p, nil
}

func dedupeInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || sorted[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}

// EnvViewAction lists the environment with secret-looking values
// masked.
func EnvViewAction(Env, Option) (Result, error) {
	vars := os.Environ()
	sort.Strings(vars)
	tbl := table.New("VARIABLE", "VALUE")
	for _, kv := range vars {
		name, value, _ := strings.Cut(kv, "=")
		tbl.Row(name, maskValue(name, value))
	}
	return Result{
		Notice: fmt.Sprintf("%d environment variables", tbl.Len()),
		Output: tbl.Render(),
	}, nil
}

var secretMarkers = []string{"KEY", "TOKEN", "SECRET", "PASSWORD", "CREDENTIAL"}

func maskValue(name, value string) string {
	if value == "" {
		return ""
	}
	upper := strings.ToUpper(name)
	for _, marker := range secretMarkers {
		if strings.Contains(upper, marker) {
			return "****"
		}
	}
	const limit = 60
	runes := []rune(value)
	if len(runes) > limit {
		return string(runes[:limit]) + "…"
	}
	return value
}

func loadDatabaseMenu(env Env) ([]Option, error) {
	paths, err := findDatabases(env.WorkDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no SQLite databases found under %s", env.WorkDir)
	}
	opts := make([]Option, 0, len(paths))
	for _, p := range paths {
		label := p
		if rel, err := filepath.Rel(env.WorkDir, p); err == nil {
			label = rel
		}
		help := ""
		if info, err := os.Stat(p); err == nil {
			help = formatSize(info.Size())
		}
		opts = append(opts, Option{Label: label, Value: p, Help: help})
	}
	return opts, nil
}

// findDatabases walks a few levels below root looking for SQLite
// files. Dependency and VCS directories are skipped.
func findDatabases(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if p != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return filepath.SkipDir
			}
			if depth(root, p) > 4 {
				return filepath.SkipDir
			}
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".db", ".sqlite", ".sqlite3":
			paths = append(paths, p)
			if len(paths) >= maxDBResults {
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to scan for databases: %w", err)
	}
	return paths, nil
}

func depth(root, p string) int {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// DatabaseExploreAction lists the tables and row counts of the chosen
// SQLite file.
func DatabaseExploreAction(_ Env, opt Option) (Result, error) {
	db, err := sql.Open("sqlite", opt.Value)
	if err != nil {
		return Result{}, fmt.Errorf("unable to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return Result{}, fmt.Errorf("unable to list tables: %w", err)
	}
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return Result{}, fmt.Errorf("unable to read table name: %w", err)
		}
		names = append(names, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("unable to list tables: %w", err)
	}
	if len(names) == 0 {
		return Result{Notice: "No tables in " + filepath.Base(opt.Value)}, nil
	}

	tbl := table.New("TABLE", "ROWS").Align(table.AlignLeft, table.AlignRight)
	for _, name := range names {
		var count int64
		quoted := `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quoted).Scan(&count); err != nil {
			tbl.Row(name, "?")
			continue
		}
		tbl.Row(name, strconv.FormatInt(count, 10))
	}
	return Result{
		Notice: fmt.Sprintf("%d tables in %s", len(names), filepath.Base(opt.Value)),
		Output: tbl.Render(),
	}, nil
}

// ConnectionTestAction checks TCP reachability of a service.
func ConnectionTestAction(Env, Option) (Result, error) {
	var target string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Service").
				Options(
					huh.NewOption("PostgreSQL (localhost:5432)", "localhost:5432"),
					huh.NewOption("MySQL (localhost:3306)", "localhost:3306"),
					huh.NewOption("Redis (localhost:6379)", "localhost:6379"),
					huh.NewOption("MongoDB (localhost:27017)", "localhost:27017"),
					huh.NewOption("Custom address", "custom"),
				).
				Value(&target),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}
	if target == "custom" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Address").
					Description("host:port").
					Validate(func(s string) error {
						_, _, err := net.SplitHostPort(strings.TrimSpace(s))
						return err
					}).
					Value(&target),
			),
		)
		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return Result{}, nil
			}
			return Result{}, err
		}
		target = strings.TrimSpace(target)
	}

	start := time.Now()
	conn, err := net.DialTimeout("tcp", target, dialTimeout)
	if err != nil {
		res := Result{Notice: fmt.Sprintf("Unreachable: %s (%v)", target, err)}
		res.Output = diagnoseHost(target)
		return res, nil
	}
	conn.Close()
	return Result{Notice: fmt.Sprintf("Reachable: %s (%s)", target, time.Since(start).Round(time.Millisecond))}, nil
}

// diagnoseHost pings the host behind a failed dial to tell a down host
// apart from a closed port.
func diagnoseHost(target string) string {
	host, _, err := net.SplitHostPort(target)
	if err != nil || host == "" || !systools.Have("ping") {
		return ""
	}
	ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer cancel()
	if _, err := systools.Run(ctx, "ping", "-c", "1", host); err != nil {
		return "The host does not answer ping either."
	}
	return "The host answers ping; the port is closed or filtered."
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
