package menu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/modeterm/modeterm/internal/state"
	"github.com/modeterm/modeterm/internal/systools"
)

const cloneTimeout = 2 * time.Minute

func loadProjectsMenu(Env) ([]Option, error) {
	return []Option{
		{Label: "Switch project", Value: "switch", Help: "Jump to another checkout"},
		{Label: "New project", Value: "new", Help: "Create a directory, optionally git init"},
		{Label: "Clone repository", Value: "clone", Help: "git clone into the projects directory"},
	}, nil
}

func loadProjectSwitchMenu(env Env) ([]Option, error) {
	if err := os.MkdirAll(env.ProjectsDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create projects directory: %w", err)
	}
	projects, err := state.ScanProjects(env.ProjectsDir)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no projects found in %s", env.ProjectsDir)
	}
	recent := recentSet(state.LoadRecent(env.RecentFile), 3)
	opts := make([]Option, 0, len(projects))
	for _, p := range projects {
		label := p.Name
		if recent[p.Path] {
			label += " (recent)"
		}
		opts = append(opts, Option{
			Label: label,
			Value: p.Path,
			Help:  fmt.Sprintf("Modified %s, %d files, %s", p.LastUsed.Format("2006-01-02 15:04"), p.Files, p.Path),
		})
	}
	return opts, nil
}

func recentSet(paths []string, limit int) map[string]bool {
	set := make(map[string]bool, limit)
	for i, p := range paths {
		if i >= limit {
			break
		}
		set[p] = true
	}
	return set
}

// ProjectSwitchAction records the selection and asks the shell wrapper
// to cd into it.
func ProjectSwitchAction(env Env, opt Option) (Result, error) {
	target := opt.Value
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return Result{}, fmt.Errorf("project directory is gone: %s", target)
	}
	if err := state.TouchRecent(env.RecentFile, target); err != nil {
		return Result{}, err
	}
	return Result{
		Dir:    target,
		Notice: "Switched to project: " + filepath.Base(target),
	}, nil
}

// ProjectNewAction prompts for a name, creates the directory, and
// optionally runs git init.
func ProjectNewAction(env Env, _ Option) (Result, error) {
	var name string
	gitInit := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Created under "+env.ProjectsDir).
				Validate(validateProjectName).
				Value(&name),
			huh.NewConfirm().
				Title("Initialise a git repository?").
				Value(&gitInit),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}

	target := filepath.Join(env.ProjectsDir, name)
	if _, err := os.Stat(target); err == nil {
		return Result{}, fmt.Errorf("project %q already exists", name)
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return Result{}, fmt.Errorf("unable to create project: %w", err)
	}
	if gitInit {
		if _, err := systools.Run(context.Background(), "git", "init", target); err != nil {
			return Result{Dir: target, Notice: "Created project, but git init failed: " + err.Error()}, nil
		}
	}
	if err := state.TouchRecent(env.RecentFile, target); err != nil {
		return Result{}, err
	}
	return Result{Dir: target, Notice: "Created project: " + name}, nil
}

// ProjectCloneAction prompts for a URL and clones it under the
// projects directory.
func ProjectCloneAction(env Env, _ Option) (Result, error) {
	var url string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Repository URL").
				Description("https or ssh, cloned under "+env.ProjectsDir).
				Validate(validateRepoURL).
				Value(&url),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}

	url = strings.TrimSpace(url)
	name := repoName(url)
	target := filepath.Join(env.ProjectsDir, name)
	if _, err := os.Stat(target); err == nil {
		return Result{}, fmt.Errorf("project %q already exists", name)
	}
	if err := os.MkdirAll(env.ProjectsDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("unable to create projects directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cloneTimeout)
	defer cancel()
	if _, err := systools.Run(ctx, "git", "clone", url, target); err != nil {
		return Result{}, err
	}
	if err := state.TouchRecent(env.RecentFile, target); err != nil {
		return Result{}, err
	}
	return Result{Dir: target, Notice: "Cloned: " + name}, nil
}

func validateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("name is required")
	}
	if strings.HasPrefix(name, ".") {
		return errors.New("name cannot start with a dot")
	}
	if strings.ContainsAny(name, "/\\ ") {
		return errors.New("name cannot contain spaces or slashes")
	}
	return nil
}

func validateRepoURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("URL is required")
	}
	if !strings.Contains(url, "/") {
		return errors.New("that does not look like a repository URL")
	}
	return nil
}

// repoName derives the checkout directory from the clone URL.
func repoName(url string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if idx := strings.LastIndex(trimmed, ":"); idx >= 0 && !strings.Contains(trimmed[idx:], "/") {
		return trimmed[idx+1:]
	}
	return path.Base(trimmed)
}
