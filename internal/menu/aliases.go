package menu

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/modeterm/modeterm/internal/format/table"
	"github.com/modeterm/modeterm/internal/state"
)

func loadAliasesMenu(Env) ([]Option, error) {
	return []Option{
		{Label: "List aliases", Value: "list", Help: "Show the managed alias file"},
		{Label: "New alias", Value: "new", Help: "Add or replace an alias"},
		{Label: "Remove alias", Value: "remove", Help: "Delete an alias"},
	}, nil
}

// AliasListAction renders the managed alias file.
func AliasListAction(env Env, _ Option) (Result, error) {
	aliases, err := state.LoadAliases(env.AliasFile)
	if err != nil {
		return Result{}, err
	}
	if len(aliases) == 0 {
		return Result{Notice: "No aliases yet; they live in " + env.AliasFile}, nil
	}
	tbl := table.New("ALIAS", "COMMAND")
	for _, a := range aliases {
		tbl.Row(a.Name, a.Command)
	}
	return Result{
		Notice: fmt.Sprintf("%d aliases in %s", len(aliases), env.AliasFile),
		Output: tbl.Render(),
	}, nil
}

// AliasNewAction prompts for a name and command and writes the alias.
func AliasNewAction(env Env, _ Option) (Result, error) {
	var name, command string
	confirmed := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Alias name").
				Description("Letters, digits, hyphens, underscores").
				Validate(func(s string) error {
					if !state.ValidAliasName(s) {
						return errors.New("letters, digits, hyphens and underscores only")
					}
					return nil
				}).
				Value(&name),
			huh.NewInput().
				Title("Command").
				Validate(func(s string) error {
					if !state.ValidAliasCommand(s) {
						return errors.New("command cannot be empty or contain single quotes")
					}
					return nil
				}).
				Value(&command),
			huh.NewConfirm().
				Title("Write the alias?").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}
	if !confirmed {
		return Result{}, nil
	}
	if err := state.PutAlias(env.AliasFile, state.Alias{Name: name, Command: command}); err != nil {
		return Result{}, err
	}
	return Result{Notice: fmt.Sprintf("Alias %q saved; restart your shell or source %s", name, env.AliasFile)}, nil
}

func loadAliasRemoveMenu(env Env) ([]Option, error) {
	aliases, err := state.LoadAliases(env.AliasFile)
	if err != nil {
		return nil, err
	}
	if len(aliases) == 0 {
		return nil, errors.New("no aliases to remove")
	}
	opts := make([]Option, 0, len(aliases))
	for _, a := range aliases {
		opts = append(opts, Option{Label: a.Name, Value: a.Name, Help: a.Command})
	}
	return opts, nil
}

// AliasRemoveAction deletes the selected alias after confirmation.
func AliasRemoveAction(env Env, opt Option) (Result, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove alias %q?", opt.Value)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return Result{}, nil
		}
		return Result{}, err
	}
	if !confirmed {
		return Result{}, nil
	}
	found, err := state.RemoveAlias(env.AliasFile, opt.Value)
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Notice: fmt.Sprintf("Alias %q was already gone", opt.Value)}, nil
	}
	return Result{Notice: fmt.Sprintf("Removed alias %q", opt.Value)}, nil
}
