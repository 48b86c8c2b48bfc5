package core

import (
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/clayne/mod-analyzer/contracts"
)

type entryKind int

const (
	otherEntry entryKind = iota
	assetContainerEntry
	pluginEntry
)

var entryKinds = map[string]entryKind{
	".ba2": assetContainerEntry,
	".bsa": assetContainerEntry,
	".esp": pluginEntry,
	".esm": pluginEntry,
	".esl": pluginEntry,
}

func classifyEntry(entryPath string) entryKind {
	return entryKinds[strings.ToLower(path.Ext(entryPath))]
}

// Job is a deferred decode of one archive entry shared by every option the
// entry was mapped into.
type Job struct {
	Entry  contracts.Entry
	Owners []OptionID
}

type JobQueueFileSystem interface {
	contracts.Deleter
}

// JobQueue collapses repeated references to one entry into a single decode.
// Jobs are keyed by entry path and drained in first-offer order.
type JobQueue struct {
	assets  contracts.AssetDecoder
	plugins contracts.PluginDecoder
	storage JobQueueFileSystem
	logger  *log.Logger
	jobs    map[string]*Job
	pending []*Job
}

func NewJobQueue(assets contracts.AssetDecoder, plugins contracts.PluginDecoder, storage JobQueueFileSystem, logger *log.Logger) *JobQueue {
	return &JobQueue{
		assets:  assets,
		plugins: plugins,
		storage: storage,
		logger:  logger,
		jobs:    make(map[string]*Job),
	}
}

func (this *JobQueue) Offer(entry contracts.Entry, owner OptionID) {
	job, found := this.jobs[entry.Path]
	if !found {
		job = &Job{Entry: entry}
		this.jobs[entry.Path] = job
		this.pending = append(this.pending, job)
	}
	for _, existing := range job.Owners {
		if existing == owner {
			return
		}
	}
	job.Owners = append(job.Owners, owner)
}

func (this *JobQueue) Len() int {
	return len(this.pending)
}

func (this *JobQueue) Job(entryPath string) (Job, bool) {
	job, found := this.jobs[entryPath]
	if !found {
		return Job{}, false
	}
	return *job, true
}

// Drain decodes every pending asset container and plugin exactly once and
// hands the result to all owners. Entries are extracted below scratch in one
// pass over the archive and removed after decoding. The queue is empty
// afterwards, whatever the outcome.
func (this *JobQueue) Drain(archive contracts.Archive, options []*contracts.Option, scratch string) (decoded int, err error) {
	defer this.reset()

	var extractions []extraction
	targets := make(map[string]string)
	for index, job := range this.pending {
		kind := classifyEntry(job.Entry.Path)
		if kind == otherEntry {
			continue
		}
		destination := filepath.Join(scratch, strconv.Itoa(index), path.Base(job.Entry.Path))
		extractions = append(extractions, extraction{job: job, kind: kind, destination: destination})
		targets[job.Entry.Path] = destination
	}
	if len(extractions) == 0 {
		return 0, nil
	}
	defer this.discard(extractions)

	if err = archive.ExtractAll(targets); err != nil {
		return 0, fmt.Errorf("extract embedded files: %w", err)
	}

	for _, item := range extractions {
		if item.kind == assetContainerEntry {
			this.decodeAssets(item.job, item.destination, options)
		} else if err = this.decodePlugin(item.job, item.destination, options); err != nil {
			return decoded, err
		}
		_ = this.storage.Delete(item.destination)
		decoded++
	}
	return decoded, nil
}

type extraction struct {
	job         *Job
	kind        entryKind
	destination string
}

// discard removes whatever a failed drain left in scratch.
func (this *JobQueue) discard(extractions []extraction) {
	for _, item := range extractions {
		_ = this.storage.Delete(item.destination)
	}
}

func (this *JobQueue) decodeAssets(job *Job, destination string, options []*contracts.Option) {
	paths, err := this.assets.DecodeAssets(destination)
	if err != nil {
		this.logger.Warn("asset container could not be decoded", "entry", job.Entry.Path, "err", err)
		return
	}
	if len(paths) == 0 {
		this.logger.Debug("asset container is empty", "entry", job.Entry.Path)
		return
	}

	container := path.Base(job.Entry.Path)
	for _, owner := range job.Owners {
		for _, asset := range paths {
			if asset = cleanPath(asset); asset != "" {
				options[owner].AddAsset(container + "/" + asset)
			}
		}
	}
	this.logger.Debug("decoded asset container", "entry", job.Entry.Path, "assets", len(paths), "owners", len(job.Owners))
}

func (this *JobQueue) decodePlugin(job *Job, destination string, options []*contracts.Option) error {
	plugin, err := this.plugins.DecodePlugin(destination)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPluginDecode, job.Entry.Path, err)
	}
	if plugin == nil {
		return fmt.Errorf("%w: %s", ErrPluginDecode, job.Entry.Path)
	}
	if plugin.Filename == "" {
		plugin.Filename = path.Base(job.Entry.Path)
	}
	if plugin.Size == 0 {
		plugin.Size = job.Entry.Size
	}

	for _, owner := range job.Owners {
		options[owner].AddPlugin(plugin)
	}
	this.logger.Debug("decoded plugin", "entry", job.Entry.Path, "owners", len(job.Owners))
	return nil
}

func (this *JobQueue) reset() {
	this.jobs = make(map[string]*Job)
	this.pending = nil
}
