// Package app wires configuration, the terminal, the assistant, and
// the menu registry into the interactive session loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/modeterm/modeterm/internal/assistant"
	"github.com/modeterm/modeterm/internal/command"
	"github.com/modeterm/modeterm/internal/config"
	"github.com/modeterm/modeterm/internal/key"
	"github.com/modeterm/modeterm/internal/logging"
	"github.com/modeterm/modeterm/internal/logging/events"
	"github.com/modeterm/modeterm/internal/menu"
	"github.com/modeterm/modeterm/internal/shell"
	"github.com/modeterm/modeterm/internal/terminal"
	"github.com/modeterm/modeterm/internal/theme"
	"github.com/modeterm/modeterm/internal/ui"
	uistate "github.com/modeterm/modeterm/internal/ui/state"
)

const rootTitle = "modeterm"

// Internal walk outcomes. errQuit unwinds the menu stack on a quit key;
// errChangeDir unwinds it after an action scheduled a directory change.
var (
	errQuit      = errors.New("app: quit")
	errChangeDir = errors.New("app: change directory")
)

type healthChecker interface {
	Health(ctx context.Context) error
}

// App carries the state shared across menu levels during one run.
type App struct {
	cfg     config.Config
	env     menu.Env
	styles  *theme.Styles
	backend ui.Assistant
	chat    *uistate.Chat

	in          io.Reader
	out         io.Writer
	tty         *os.File
	keys        key.Source
	geometry    ui.Geometry
	raw         *terminal.RawGuard
	interactive bool

	ctx      context.Context
	cdTarget string
}

// Run executes the interactive loop and returns the process exit code.
// A scheduled directory change exits with shell.ExitCD so the shell
// wrapper picks up the marker file.
func Run(ctx context.Context, cfg config.Config) (int, error) {
	if err := logging.Configure(cfg.Logging.FilePath, cfg.Verbose()); err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	}
	defer logging.Close()

	a := &App{
		cfg:    cfg,
		styles: theme.New(cfg.UI.Accent),
		chat:   uistate.NewChat(cfg.Assistant.HistorySize),
		in:     os.Stdin,
		out:    os.Stdout,
		tty:    os.Stdin,
		ctx:    ctx,
	}

	env, err := buildEnv(cfg)
	if err != nil {
		return 1, err
	}
	a.env = env

	backend, err := assistant.New(cfg.Assistant)
	if err != nil {
		return 1, err
	}
	if backend != nil {
		classifier := command.NewClassifier(cfg.Commands.Safe, cfg.Commands.Confirm)
		a.backend = command.NewPipeline(backend, command.NewRunner(classifier, env.HomeDir))
		if h, ok := backend.(healthChecker); ok {
			if herr := h.Health(ctx); herr != nil {
				events.Assistant.Error(cfg.Assistant.Provider, herr)
				fmt.Fprintln(os.Stderr, "AI service not available. Please start Ollama.")
			}
		}
	}

	a.interactive = terminal.IsTerminal(os.Stdin) && terminal.IsTerminal(os.Stdout)
	if a.interactive {
		geo := terminal.NewGeometry(os.Stdout)
		defer geo.Close()
		a.geometry = sizedGeometry{inner: geo, width: cfg.UI.Width, height: cfg.UI.Height}
		a.keys = key.NewDecoder(terminal.NewStdin(os.Stdin), geo.Changed)
		if err := a.acquire(); err != nil {
			return 1, err
		}
		defer a.release()
	} else {
		a.geometry = fixedGeometry{width: orDefault(cfg.UI.Width, 80), height: orDefault(cfg.UI.Height, 24)}
		a.keys = key.NewLineDecoder(os.Stdin, os.Stdout)
	}

	width, height := a.geometry.Size()
	events.App.Start(cfg.Assistant.Provider, cfg.Assistant.Model, width, height)

	err = a.walk(menu.BuildRegistry().Root(), rootTitle, a.rootHeader)
	switch {
	case errors.Is(err, errChangeDir):
		events.App.ChangeDir(a.cdTarget)
		events.App.Exit("cd")
		return shell.ExitCD, nil
	case errors.Is(err, errQuit), err == nil:
		events.App.Exit("quit")
		return 0, nil
	default:
		events.App.Exit("error")
		return 1, err
	}
}

// buildEnv resolves the directories menus operate on. The working
// directory falls back to home when the current one is gone.
func buildEnv(cfg config.Config) (menu.Env, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return menu.Env{}, fmt.Errorf("resolving home directory: %w", err)
	}
	work, err := os.Getwd()
	if err != nil {
		work = home
	}
	return menu.Env{
		WorkDir:     work,
		HomeDir:     home,
		ProjectsDir: cfg.Paths.ProjectsDir,
		AliasFile:   cfg.AliasFile(),
		RecentFile:  filepath.Join(cfg.Paths.StateDir, "recent"),
		CDFile:      cfg.CDMarker(),
	}, nil
}

// walk drives the menu loop for one node, descending into children on
// selection. It returns nil when the user backs out of this level.
func (a *App) walk(node *menu.Node, title string, header func(int) string) error {
	for {
		options, err := node.Loader(a.env)
		if err != nil {
			a.report(err.Error())
			return nil
		}

		value, err := ui.RunMenu(a.ctx, a.params(title, options, header))
		switch {
		case errors.Is(err, ui.ErrBack):
			return nil
		case errors.Is(err, ui.ErrQuit):
			return errQuit
		case err != nil:
			return err
		}

		picked := pickOption(options, value)
		child, ok := node.Children[value]
		if ok && child.ID == menu.QuitValue {
			return errQuit
		}
		if !ok {
			// Selection from a loaded list; the node's own action
			// handles it.
			if node.Action == nil {
				continue
			}
			if err := a.perform(node, picked); err != nil {
				return err
			}
			continue
		}
		switch {
		case child.Loader != nil:
			if err := a.walk(child, picked.Label, nil); err != nil {
				return err
			}
		case child.Action != nil:
			if err := a.perform(child, picked); err != nil {
				return err
			}
		}
	}
}

// perform runs an action in cooked mode and shows its result. Action
// failures are reported and the menu stays up; only quit and directory
// changes unwind the stack.
func (a *App) perform(node *menu.Node, opt menu.Option) error {
	a.release()
	defer a.resume()

	res, err := node.Action(a.env, opt)
	if err != nil {
		events.Action.Error(node.ID, err)
		a.prompt(a.styles.Error.Render("Error:") + " " + err.Error())
		return nil
	}
	if res.Dir != "" {
		if werr := shell.WriteMarker(a.env.CDFile, res.Dir); werr != nil {
			events.Action.Error(node.ID, werr)
			a.prompt(a.styles.Error.Render("Error:") + " " + werr.Error())
			return nil
		}
		events.Action.Success(node.ID, "cd "+res.Dir)
		a.cdTarget = res.Dir
		return errChangeDir
	}
	events.Action.Success(node.ID, res.Notice)
	if body := formatResult(res); body != "" {
		a.prompt(body)
	}
	return nil
}

func (a *App) params(title string, options []menu.Option, header func(int) string) ui.Params {
	return ui.Params{
		Title:       title,
		Options:     options,
		Help:        a.showKeyHelp,
		Header:      header,
		Assistant:   a.backend,
		Keys:        a.keys,
		Geometry:    a.geometry,
		Output:      a.out,
		Styles:      a.styles,
		HistorySize: a.cfg.Assistant.HistorySize,
		Chat:        a.chat,
	}
}

// rootHeader names the app and the active assistant above the top
// menu.
func (a *App) rootHeader(int) string {
	provider := "assistant off"
	if a.backend != nil {
		provider = a.cfg.Assistant.Provider
		if a.cfg.Assistant.Model != "" {
			provider += " " + a.cfg.Assistant.Model
		}
	}
	return a.styles.OverlayTitle.Render(rootTitle) + "  " + a.styles.Hint.Render(provider)
}

func (a *App) showKeyHelp() error {
	title, body := menu.KeyHelp()
	return ui.ShowOverlay(a.out, a.styles, a.keys, title, body)
}

// report surfaces a loader failure between menu sessions.
func (a *App) report(body string) {
	a.release()
	a.prompt(body)
	a.resume()
}

// prompt prints a cooked-mode report and holds it on screen until the
// user presses enter.
func (a *App) prompt(body string) {
	fmt.Fprintf(a.out, "\n%s\n\n", strings.TrimRight(body, "\n"))
	fmt.Fprint(a.out, a.styles.Hint.Render("press enter to continue"))
	awaitLine(a.in)
	fmt.Fprintln(a.out)
}

// acquire enters raw mode; release leaves it. Actions and prompts run
// released so line input and huh forms behave normally.
func (a *App) acquire() error {
	if !a.interactive || a.raw != nil {
		return nil
	}
	guard, err := terminal.MakeRaw(a.tty)
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	a.raw = guard
	return nil
}

func (a *App) release() {
	if a.raw == nil {
		return
	}
	a.raw.Restore()
	a.raw = nil
}

func (a *App) resume() {
	if err := a.acquire(); err != nil {
		// The decoder still works without raw mode; keys just echo.
		logging.Info("raw mode lost", "error", err.Error())
	}
}

func pickOption(options []menu.Option, value string) menu.Option {
	for _, opt := range options {
		if opt.Value == value {
			return opt
		}
	}
	return menu.Option{Value: value, Label: value}
}

func formatResult(res menu.Result) string {
	switch {
	case res.Notice != "" && res.Output != "":
		return res.Notice + "\n\n" + res.Output
	case res.Output != "":
		return res.Output
	default:
		return res.Notice
	}
}

// awaitLine consumes bytes until a newline so type-ahead does not leak
// into the next raw-mode session.
func awaitLine(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n > 0 && (buf[0] == '\n' || buf[0] == '\r') {
			return
		}
	}
}

func orDefault(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// sizedGeometry overlays fixed dimensions from configuration on live
// terminal geometry. Zero fields defer to the terminal.
type sizedGeometry struct {
	inner         ui.Geometry
	width, height int
}

func (g sizedGeometry) Changed() bool { return g.inner.Changed() }

func (g sizedGeometry) Size() (int, int) {
	w, h := g.inner.Size()
	if g.width > 0 {
		w = g.width
	}
	if g.height > 0 {
		h = g.height
	}
	return w, h
}

// fixedGeometry serves the line-input fallback where no terminal is
// attached.
type fixedGeometry struct {
	width, height int
}

func (fixedGeometry) Changed() bool { return false }

func (g fixedGeometry) Size() (int, int) { return g.width, g.height }
