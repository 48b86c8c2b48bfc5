package core

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/clayne/mod-analyzer/contracts"
)

// ResolveOutputName names the report after the first top-level option flagged
// as default, falling back to the first option.
func ResolveOutputName(options []*contracts.Option) string {
	for _, option := range options {
		if option.IsDefault {
			return option.Name
		}
	}
	if len(options) == 0 {
		return ""
	}
	return options[0].Name
}

// MarkDefault flags the top-level option named preferred as the batch default.
// When nothing carries that name, or no name is preferred, a batch holding a
// single archive marks that archive. It returns false only when preferred
// names no option.
func MarkDefault(options []*contracts.Option, preferred string) bool {
	preferred = strings.TrimSpace(preferred)
	for _, option := range options {
		if preferred != "" && strings.EqualFold(option.Name, preferred) {
			option.IsDefault = true
			return true
		}
	}
	if len(options) == 1 {
		options[0].IsDefault = true
	}
	return preferred == ""
}

type ReportFileSystem interface {
	contracts.DirectoryMaker
	contracts.FileCreator
}

type ReportWriter struct {
	storage   ReportFileSystem
	directory string
	format    string
}

func NewReportWriter(storage ReportFileSystem, directory, format string) *ReportWriter {
	if format == "" {
		format = contracts.ReportFormatJSON
	}
	return &ReportWriter{storage: storage, directory: directory, format: format}
}

// Write serializes the snapshot to <directory>/<name>.<format>, replacing any
// previous report of the same name, and returns the report's path.
func (this *ReportWriter) Write(snapshot contracts.Snapshot, name string) (string, error) {
	encode, err := this.encoder()
	if err != nil {
		return "", err
	}
	if err = this.storage.MkdirAll(this.directory); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	target := filepath.Join(this.directory, reportFileName(name)+"."+this.format)
	writer, err := this.storage.Create(target)
	if err != nil {
		return "", fmt.Errorf("create report %s: %w", target, err)
	}

	options := snapshot.Options
	if options == nil {
		options = []*contracts.Option{}
	}
	err = encode(writer, options)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write report %s: %w", target, err)
	}
	return target, nil
}

type reportEncoder func(io.Writer, []*contracts.Option) error

func (this *ReportWriter) encoder() (reportEncoder, error) {
	switch this.format {
	case contracts.ReportFormatYAML:
		return encodeYAML, nil
	case contracts.ReportFormatJSON:
		return encodeJSON, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", this.format)
	}
}

func encodeJSON(writer io.Writer, options []*contracts.Option) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(options)
}

func encodeYAML(writer io.Writer, options []*contracts.Option) error {
	encoder := yaml.NewEncoder(writer)
	if err := encoder.Encode(options); err != nil {
		return err
	}
	return encoder.Close()
}

const defaultReportName = "report"

func reportFileName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" || name == "." || name == ".." {
		return defaultReportName
	}
	return name
}
