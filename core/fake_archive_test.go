package core

import (
	"errors"
	"path/filepath"

	"github.com/clayne/mod-analyzer/contracts"
	"github.com/clayne/mod-analyzer/shell"
)

type FakeArchive struct {
	path     string
	entries  []contracts.Entry
	contents map[string][]byte
	storage  *shell.InMemoryFileSystem

	extracted    []string
	walks        int
	entriesCalls int
	closeCalls   int
	extractErr   error
}

func NewFakeArchive(path string, storage *shell.InMemoryFileSystem) *FakeArchive {
	return &FakeArchive{path: path, storage: storage, contents: make(map[string][]byte)}
}

func (this *FakeArchive) Add(path, content string) *FakeArchive {
	this.entries = append(this.entries, contracts.Entry{Path: path, Size: int64(len(content))})
	this.contents[path] = []byte(content)
	return this
}

func (this *FakeArchive) AddDirectory(path string) *FakeArchive {
	this.entries = append(this.entries, contracts.Entry{Path: path, IsDirectory: true})
	return this
}

func (this *FakeArchive) Path() string { return this.path }

func (this *FakeArchive) Entries() []contracts.Entry {
	this.entriesCalls++
	return this.entries
}

func (this *FakeArchive) Extract(entry string, destination string) error {
	return this.ExtractAll(map[string]string{entry: destination})
}

func (this *FakeArchive) ExtractAll(targets map[string]string) error {
	this.walks++
	if this.extractErr != nil {
		return this.extractErr
	}
	for entry := range targets {
		if _, found := this.contents[entry]; !found {
			return entryMissingErr
		}
	}
	for _, entry := range this.entries {
		destination, wanted := targets[entry.Path]
		if !wanted {
			continue
		}
		this.extracted = append(this.extracted, entry.Path)
		if err := this.storage.WriteFile(destination, this.contents[entry.Path]); err != nil {
			return err
		}
	}
	return nil
}

func (this *FakeArchive) Close() error {
	this.closeCalls++
	return nil
}

var (
	entryMissingErr = errors.New("entry missing")
	decodeErr       = errors.New("decode error")
	parseErr        = errors.New("parse error")
)

///////////////////////////////////////////////////////////

// FakeAssetDecoder answers by the base name of the extracted file.
type FakeAssetDecoder struct {
	results map[string][]string
	errs    map[string]error
	calls   map[string]int
}

func NewFakeAssetDecoder() *FakeAssetDecoder {
	return &FakeAssetDecoder{
		results: make(map[string][]string),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (this *FakeAssetDecoder) DecodeAssets(path string) ([]string, error) {
	name := filepath.Base(path)
	this.calls[name]++
	return this.results[name], this.errs[name]
}

type FakePluginDecoder struct {
	results map[string]*contracts.Plugin
	errs    map[string]error
	calls   map[string]int
	panics  bool
}

func NewFakePluginDecoder() *FakePluginDecoder {
	return &FakePluginDecoder{
		results: make(map[string]*contracts.Plugin),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (this *FakePluginDecoder) DecodePlugin(path string) (*contracts.Plugin, error) {
	name := filepath.Base(path)
	this.calls[name]++
	if this.panics {
		panic("corrupt plugin")
	}
	return this.results[name], this.errs[name]
}

type FakeConfigParser struct {
	options []contracts.ScriptOption
	err     error
	storage *shell.InMemoryFileSystem
	paths   []string
	content []string
}

func (this *FakeConfigParser) ParseConfig(path string) ([]contracts.ScriptOption, error) {
	this.paths = append(this.paths, path)
	if this.storage != nil {
		raw, _ := this.storage.ReadFile(path)
		this.content = append(this.content, string(raw))
	}
	return this.options, this.err
}

///////////////////////////////////////////////////////////

type FakeObserver struct {
	messages  []contracts.Message
	completed int
}

func (this *FakeObserver) OnMessage(text string, isStatus bool) {
	this.messages = append(this.messages, contracts.Message{Text: text, IsStatus: isStatus})
}

func (this *FakeObserver) OnCompleted() {
	this.completed++
}
