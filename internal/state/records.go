// Package state holds the on-disk records the menus work from:
// projects under the projects directory, aliases in the managed alias
// file, and the recently-visited list.
package state

import "time"

// Project is one directory under the projects root.
type Project struct {
	Name     string
	Path     string
	LastUsed time.Time
	Files    int
}

// Alias is one managed shell alias.
type Alias struct {
	Name    string
	Command string
}
