package menu

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/modeterm/modeterm/internal/format/table"
	"github.com/modeterm/modeterm/internal/systools"
)

func loadSystemMenu(Env) ([]Option, error) {
	return []Option{
		{Label: "System info", Value: "info", Help: "Host, kernel, uptime"},
		{Label: "Disk usage", Value: "disk", Help: "Mounted filesystems"},
	}, nil
}

// SystemInfoAction summarises the host.
func SystemInfoAction(Env, Option) (Result, error) {
	ctx := context.Background()
	tbl := table.New("FIELD", "VALUE")

	if host, err := os.Hostname(); err == nil {
		tbl.Row("Hostname", host)
	}
	if out, err := systools.Run(ctx, "uname", "-s", "-r"); err == nil {
		tbl.Row("Kernel", out)
	}
	tbl.Row("Architecture", runtime.GOARCH)
	tbl.Row("CPU cores", fmt.Sprintf("%d", runtime.NumCPU()))
	if out := systools.Lenient(ctx, "uptime", "-p"); out != "" {
		tbl.Row("Uptime", out)
	} else if out := systools.Lenient(ctx, "uptime"); out != "" {
		tbl.Row("Uptime", out)
	}
	if user := os.Getenv("USER"); user != "" {
		tbl.Row("User", user)
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		tbl.Row("Shell", shell)
	}

	return Result{Output: tbl.Render()}, nil
}

// DiskUsageAction re-renders df -h as an aligned table.
func DiskUsageAction(Env, Option) (Result, error) {
	out, err := systools.Run(context.Background(), "df", "-h")
	if err != nil {
		return Result{}, err
	}
	lines := strings.Split(out, "\n")
	if len(lines) < 2 {
		return Result{Notice: "df returned nothing"}, nil
	}

	tbl := table.New("FILESYSTEM", "SIZE", "USED", "AVAIL", "USE%", "MOUNTED ON").
		Align(table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight, table.AlignRight)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		// mount points may contain spaces
		tbl.Row(fields[0], fields[1], fields[2], fields[3], fields[4], strings.Join(fields[5:], " "))
	}
	return Result{
		Notice: fmt.Sprintf("%d filesystems", tbl.Len()),
		Output: tbl.Render(),
	}, nil
}
