// Package menu defines the navigable tree: a registry of category
// loaders and the actions behind each leaf. Loaders run before the
// menu is drawn; actions run in cooked mode after a selection.
package menu

// Option represents a selectable menu entry. Value is what selection
// returns to the caller; for category entries it doubles as the
// registry key of the submenu.
type Option struct {
	Label string
	Value string
	Help  string
}

// Env carries the paths loaders and actions work against.
type Env struct {
	WorkDir     string
	HomeDir     string
	ProjectsDir string
	AliasFile   string
	RecentFile  string
	CDFile      string
}

// QuitValue is the root entry that ends the session when selected.
const QuitValue = "quit"

// Result communicates the outcome of executing a menu action.
type Result struct {
	Notice string // one-line status shown after the action
	Output string // preformatted body, usually a table
	Dir    string // when set, the shell wrapper should cd here
}

// Loader populates submenu entries on demand.
type Loader func(Env) ([]Option, error)

// Action executes the work behind a selected entry. Actions run in
// cooked mode, so they are free to prompt.
type Action func(Env, Option) (Result, error)

// RootItems returns the top-level menu entries.
func RootItems() []Option {
	return []Option{
		{Label: "Projects", Value: "projects", Help: "Switch, create, and clone projects"},
		{Label: "Dev Tools", Value: "devtools", Help: "Ports, env, databases, connectivity"},
		{Label: "System", Value: "system", Help: "Host and disk information"},
		{Label: "Aliases", Value: "aliases", Help: "Manage shell aliases"},
		{Label: "Help", Value: "help", Help: "Guides and keybindings"},
		{Label: "Quit", Value: QuitValue, Help: "Leave modeterm"},
	}
}

// CategoryLoaders lists submenu loaders keyed by root item value.
func CategoryLoaders() map[string]Loader {
	return map[string]Loader{
		"projects": loadProjectsMenu,
		"devtools": loadDevToolsMenu,
		"system":   loadSystemMenu,
		"aliases":  loadAliasesMenu,
		"help":     loadHelpMenu,
	}
}

// ActionHandlers maps submenu identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		"projects:switch": ProjectSwitchAction,
		"projects:new":    ProjectNewAction,
		"projects:clone":  ProjectCloneAction,
		"devtools:ports":  PortScanAction,
		"devtools:env":    EnvViewAction,
		"devtools:db":     DatabaseExploreAction,
		"devtools:net":    ConnectionTestAction,
		"system:info":     SystemInfoAction,
		"system:disk":     DiskUsageAction,
		"aliases:list":    AliasListAction,
		"aliases:new":     AliasNewAction,
		"aliases:remove":  AliasRemoveAction,
		"help:guide":      HelpGuideAction,
		"help:search":     HelpSearchAction,
	}
}

// ActionLoaders enumerates loaders for nested submenu actions.
func ActionLoaders() map[string]Loader {
	return map[string]Loader{
		"projects:switch": loadProjectSwitchMenu,
		"devtools:db":     loadDatabaseMenu,
		"aliases:remove":  loadAliasRemoveMenu,
		"help:guide":      loadHelpGuideMenu,
	}
}
