package core

import (
	"path"
	"strings"

	"github.com/clayne/mod-analyzer/contracts"
)

// OptionID identifies an option within one archive's mapping pass.
type OptionID int

// Rule maps an entry path (relative to the install root) onto a destination
// inside the owning option. A matching rule may still yield an empty
// destination, which callers skip.
type Rule interface {
	Owner() OptionID
	Map(entryPath string) (destination string, matched bool)
}

// DirectoryRule matches entries below a top-level convention directory.
type DirectoryRule struct {
	owner  OptionID
	Prefix string
}

func NewDirectoryRule(owner OptionID, prefix string) DirectoryRule {
	return DirectoryRule{owner: owner, Prefix: cleanPath(prefix)}
}

func (this DirectoryRule) Owner() OptionID { return this.owner }

func (this DirectoryRule) Map(entryPath string) (string, bool) {
	if !strings.HasPrefix(entryPath, this.Prefix+"/") {
		return "", false
	}
	return entryPath[len(this.Prefix)+1:], true
}

// InstallerRule matches entries against a file or folder source declared by
// an installer script. Sources match case-insensitively.
type InstallerRule struct {
	owner       OptionID
	Source      string
	Destination string
	Folder      bool
}

func NewInstallerRule(owner OptionID, file contracts.ScriptFile) InstallerRule {
	return InstallerRule{
		owner:       owner,
		Source:      cleanPath(file.Source),
		Destination: cleanPath(file.Destination),
		Folder:      file.Folder,
	}
}

func (this InstallerRule) Owner() OptionID { return this.owner }

func (this InstallerRule) Map(entryPath string) (string, bool) {
	if this.Folder {
		return this.mapFolder(entryPath)
	}
	if strings.ContainsAny(this.Source, "*?[") {
		return this.mapPattern(entryPath)
	}
	if !strings.EqualFold(entryPath, this.Source) {
		return "", false
	}
	if this.Destination == "" {
		return path.Base(entryPath), true
	}
	return this.Destination, true
}

func (this InstallerRule) mapFolder(entryPath string) (string, bool) {
	if this.Source == "" {
		return joinPath(this.Destination, entryPath), true
	}
	cut := len(this.Source)
	if len(entryPath) <= cut || entryPath[cut] != '/' || !strings.EqualFold(entryPath[:cut], this.Source) {
		return "", false
	}
	return joinPath(this.Destination, entryPath[cut+1:]), true
}

func (this InstallerRule) mapPattern(entryPath string) (string, bool) {
	matched, err := path.Match(strings.ToLower(this.Source), strings.ToLower(entryPath))
	if err != nil || !matched {
		return "", false
	}
	return joinPath(this.Destination, path.Base(entryPath)), true
}
