package core

import "github.com/clayne/mod-analyzer/contracts"

const parentOption OptionID = 0

// mappingPass holds the state of mapping one top-level archive: its option
// table (the parent first, derived options after it in creation order) and
// the run's job queue.
type mappingPass struct {
	detection Detection
	entries   []contracts.Entry
	options   []*contracts.Option
	queue     *JobQueue
	ignore    *IgnoreRules
	scratch   string
	mapped    int
	bytes     int64
}

func newMappingPass(parent *contracts.Option, entries []contracts.Entry, detection Detection, queue *JobQueue, ignore *IgnoreRules, scratch string) *mappingPass {
	return &mappingPass{
		detection: detection,
		entries:   entries,
		options:   []*contracts.Option{parent},
		queue:     queue,
		ignore:    ignore,
		scratch:   scratch,
	}
}

func (this *mappingPass) parent() *contracts.Option {
	return this.options[parentOption]
}

func (this *mappingPass) register(option *contracts.Option) OptionID {
	this.options = append(this.options, option)
	return OptionID(len(this.options) - 1)
}

type mappedFile struct {
	entry    contracts.Entry
	relative string
}

// files lists the file entries below the install root that are not ignored,
// in container order.
func (this *mappingPass) files() []mappedFile {
	files := make([]mappedFile, 0, len(this.entries))
	base := this.parent().BaseInstallPath
	for _, entry := range this.entries {
		if entry.IsDirectory {
			continue
		}
		relative, inside := relativePath(entry.Path, base)
		if !inside || relative == "" || this.ignore.Ignored(relative) {
			continue
		}
		files = append(files, mappedFile{entry: entry, relative: relative})
	}
	return files
}

// apply tests the file against every rule in order; every match is applied.
func (this *mappingPass) apply(rules []Rule, file mappedFile) {
	for _, rule := range rules {
		destination, matched := rule.Map(file.relative)
		if matched {
			this.assign(rule.Owner(), file.entry, destination)
		}
	}
}

// assign adds the destination to the option unless it is empty or already
// present, in which case nothing changes.
func (this *mappingPass) assign(owner OptionID, entry contracts.Entry, destination string) bool {
	option := this.options[owner]
	if !option.AddAsset(destination) {
		return false
	}
	option.Size += entry.Size
	this.mapped++
	this.bytes += entry.Size
	this.queue.Offer(entry, owner)
	return true
}
