package core

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/clayne/mod-analyzer/contracts"
)

type AnalyzerFileSystem interface {
	contracts.FileOpener
	contracts.DirectoryMaker
	contracts.Deleter
}

type Settings struct {
	ScratchDirectory string
	MessageBuffer    int
	Ignore           *IgnoreRules
}

const separator = "----------------------------------------"

// Analyzer runs one analysis at a time over a batch of opened archives.
type Analyzer struct {
	storage  AnalyzerFileSystem
	parser   contracts.ConfigParser
	assets   contracts.AssetDecoder
	plugins  contracts.PluginDecoder
	report   *ReportWriter
	logger   *log.Logger
	settings Settings
	running  atomic.Bool

	newHash  func() hash.Hash
	newRunID func() string
}

func NewAnalyzer(
	storage AnalyzerFileSystem,
	parser contracts.ConfigParser,
	assets contracts.AssetDecoder,
	plugins contracts.PluginDecoder,
	report *ReportWriter,
	logger *log.Logger,
	settings Settings,
) *Analyzer {
	return &Analyzer{
		storage:  storage,
		parser:   parser,
		assets:   assets,
		plugins:  plugins,
		report:   report,
		logger:   logger,
		settings: settings,
		newHash:  md5.New,
		newRunID: uuid.NewString,
	}
}

// Start launches a run over the top-level options, in order, and returns
// immediately. Only one run may be in flight; a second Start fails with
// ErrBusy until the first has completed.
func (this *Analyzer) Start(options []*contracts.Option) (*Run, error) {
	if !this.running.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	run := newRun(this.newRunID(), max(this.settings.MessageBuffer, 0))
	run.state.Store(int32(Running))
	go this.execute(run, options)
	return run, nil
}

func (this *Analyzer) execute(run *Run, options []*contracts.Option) {
	started := time.Now()
	logger := this.logger.With("run", run.ID)
	defer this.complete(run, logger)

	logger.Info("analysis started", "archives", len(options))
	scratch := filepath.Join(this.settings.ScratchDirectory, run.ID)
	snapshot, failed := this.analyzeAll(run, logger, options, scratch)
	if err := this.storage.DeleteAll(scratch); err != nil {
		logger.Warn("scratch directory could not be removed", "path", scratch, "err", err)
	}
	run.result.Snapshot = snapshot
	run.result.Failed = failed

	path, err := this.report.Write(snapshot, ResolveOutputName(options))
	if err != nil {
		run.result.Failed = true
		logger.Error("report could not be written", "err", err)
		run.info("Report could not be written: " + err.Error())
		return
	}
	run.result.ReportPath = path
	logger.Info("analysis finished", "options", len(snapshot.Options), "report", path, "elapsed", time.Since(started))
	run.status("Report written to " + path)
	run.status(fmt.Sprintf("Analysis complete (%d options)", len(snapshot.Options)))
}

func (this *Analyzer) complete(run *Run, logger *log.Logger) {
	if recovered := recover(); recovered != nil {
		run.result.Failed = true
		logger.Error("analysis panicked", "panic", recovered)
		run.info(failureText("Analysis failed", fmt.Errorf("%w: %v", ErrPanic, recovered), debug.Stack()))
	}
	close(run.messages)
	run.state.Store(int32(Completed))
	this.running.Store(false)
	close(run.done)
}

// analyzeAll processes the archives in order. The first failure, error or
// panic, stops the loop; the options of archives finished before it are kept.
func (this *Analyzer) analyzeAll(run *Run, logger *log.Logger, options []*contracts.Option, scratch string) (snapshot contracts.Snapshot, failed bool) {
	queue := NewJobQueue(this.assets, this.plugins, this.storage, logger)
	index := 0

	defer func() {
		if recovered := recover(); recovered != nil {
			failed = true
			logger.Error("analysis panicked", "archive", options[index].Name, "panic", recovered)
			run.info(failureText("Analysis of "+options[index].Name+" failed", fmt.Errorf("%w: %v", ErrPanic, recovered), debug.Stack()))
		}
		if failed {
			release(options[index+1:])
		}
	}()

	for ; index < len(options); index++ {
		survivors, err := this.analyze(run, logger, queue, options[index], filepath.Join(scratch, strconv.Itoa(index)))
		if err != nil {
			logger.Error("analysis aborted", "archive", options[index].Name, "err", err)
			run.info(failureText("Analysis of "+options[index].Name+" failed", err, nil))
			return snapshot, true
		}
		snapshot.Append(survivors...)
	}
	return snapshot, false
}

func (this *Analyzer) analyze(run *Run, logger *log.Logger, queue *JobQueue, parent *contracts.Option, scratch string) ([]*contracts.Option, error) {
	if parent.Archive == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingArchive, parent.Name)
	}
	defer func() { _ = parent.Archive.Close() }()

	logger = logger.With("archive", parent.Name)
	run.status("Analyzing " + parent.Name)

	digest, err := this.contentHash(parent.Archive.Path())
	if err != nil {
		return nil, fmt.Errorf("hash %s: %w", parent.Archive.Path(), err)
	}
	parent.ContentHash = digest
	run.info("Content hash: " + digest)

	entries := parent.Archive.Entries()
	detection := DetectArchiveType(entries, parent.BaseInstallPath)
	parent.BaseInstallPath = detection.BaseInstallPath
	logger.Info("archive classified", "type", detection.Type, "base", detection.BaseInstallPath)
	run.info("Detected " + detection.Type.String() + " archive")

	pass := newMappingPass(parent, entries, detection, queue, this.settings.Ignore, scratch)
	if err = this.mapperFor(detection.Type).mapEntries(pass); err != nil {
		return nil, err
	}
	run.info(fmt.Sprintf("Mapped %d files (%s) into %d options", pass.mapped, humanFileSize(pass.bytes), len(pass.options)))

	decoded, err := queue.Drain(parent.Archive, pass.options, scratch)
	if err != nil {
		return nil, err
	}
	run.info(fmt.Sprintf("Decoded %d embedded files", decoded))

	survivors := discardEmpty(pass.options)
	logger.Info("archive analyzed", "options", len(survivors), "discarded", len(pass.options)-len(survivors))
	run.info(separator)
	return survivors, nil
}

func (this *Analyzer) mapperFor(archiveType ArchiveType) entryMapper {
	switch archiveType {
	case InstallerScript:
		return installerMapper{parser: this.parser, storage: this.storage}
	case DirectoryConvention:
		return directoryMapper{}
	default:
		return plainMapper{}
	}
}

func (this *Analyzer) contentHash(path string) (string, error) {
	source, err := this.storage.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = source.Close() }()

	hasher := this.newHash()
	if _, err = io.Copy(io.Discard, NewHashReader(source, hasher)); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func release(options []*contracts.Option) {
	for _, option := range options {
		if option.Archive != nil {
			_ = option.Archive.Close()
		}
	}
}

// failureText renders a summary line followed by the error chain, outermost
// first, and an optional stack trace.
func failureText(summary string, err error, stack []byte) string {
	builder := new(strings.Builder)
	builder.WriteString(summary)
	builder.WriteString(": ")
	builder.WriteString(err.Error())
	for _, cause := range causes(err) {
		builder.WriteString("\n    caused by: ")
		builder.WriteString(cause.Error())
	}
	if len(stack) > 0 {
		builder.WriteString("\n")
		builder.Write(stack)
	}
	return builder.String()
}

func causes(err error) (chain []error) {
	pending := unwrap(err)
	for len(pending) > 0 {
		next := pending[0]
		pending = append(unwrap(next), pending[1:]...)
		chain = append(chain, next)
	}
	return chain
}

func unwrap(err error) []error {
	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		return wrapped.Unwrap()
	case interface{ Unwrap() error }:
		if inner := wrapped.Unwrap(); inner != nil {
			return []error{inner}
		}
	}
	return nil
}
