package core

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/clayne/mod-analyzer/contracts"
)

type entryMapper interface {
	mapEntries(pass *mappingPass) error
}

type plainMapper struct{}

func (plainMapper) mapEntries(pass *mappingPass) error {
	for _, file := range pass.files() {
		pass.assign(parentOption, file.entry, file.relative)
	}
	return nil
}

type directoryMapper struct{}

// mapEntries creates one option per convention directory, in ascending
// ordinal name order, and maps each file to the directory containing it.
func (directoryMapper) mapEntries(pass *mappingPass) error {
	directories := append([]string(nil), pass.detection.Directories...)
	sort.Strings(directories)

	rules := make([]Rule, 0, len(directories))
	for _, directory := range directories {
		option := pass.parent().Derive(directory)
		option.IsDirectoryConventionOption = true
		rules = append(rules, NewDirectoryRule(pass.register(option), directory))
	}
	for _, file := range pass.files() {
		pass.apply(rules, file)
	}
	return nil
}

const scratchConfigName = "ModuleConfig.xml"

type installerMapper struct {
	parser  contracts.ConfigParser
	storage contracts.DirectoryMaker
}

func (this installerMapper) mapEntries(pass *mappingPass) error {
	parent := pass.parent()
	if pass.detection.ConfigEntry == "" {
		return fmt.Errorf("%w in %s", ErrMissingInstallerConfig, parent.Name)
	}
	if err := this.storage.MkdirAll(pass.scratch); err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	destination := filepath.Join(pass.scratch, scratchConfigName)
	if err := parent.Archive.Extract(pass.detection.ConfigEntry, destination); err != nil {
		return fmt.Errorf("%w in %s: %w", ErrMissingInstallerConfig, parent.Name, err)
	}

	scripted, err := this.parser.ParseConfig(destination)
	if err != nil {
		return fmt.Errorf("parse installer configuration of %s: %w", parent.Name, err)
	}

	var rules []Rule
	for _, option := range scripted {
		owner := pass.register(parent.Derive(option.Name))
		for _, file := range option.Files {
			rules = append(rules, NewInstallerRule(owner, file))
		}
	}
	for _, file := range pass.files() {
		pass.apply(rules, file)
	}
	return nil
}
