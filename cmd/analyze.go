package cmd

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/clayne/mod-analyzer/archive"
	"github.com/clayne/mod-analyzer/bsa"
	"github.com/clayne/mod-analyzer/contracts"
	"github.com/clayne/mod-analyzer/core"
	"github.com/clayne/mod-analyzer/fomod"
	"github.com/clayne/mod-analyzer/plugin"
	"github.com/clayne/mod-analyzer/shell"
)

// Analyze opens the archives at paths, runs one analysis over them and prints
// its progress to stdout. Hard failures during the run are reported through
// the result's Failed flag rather than the error.
func Analyze(config contracts.Config, paths []string, stdout io.Writer, logger *log.Logger) (core.Result, error) {
	ignore, err := core.NewIgnoreRules(config.Ignore)
	if err != nil {
		return core.Result{}, err
	}

	options, err := archive.OpenOptions(paths, config.BaseInstallPath)
	if err != nil {
		return core.Result{}, err
	}
	if !core.MarkDefault(options, config.DefaultOption) {
		logger.Warn("default option not found among the archives", "name", config.DefaultOption)
	}

	disk := shell.NewDiskFileSystem()
	analyzer := core.NewAnalyzer(
		disk,
		fomod.NewParser(disk),
		bsa.NewDecoder(disk),
		plugin.NewDecoder(disk),
		core.NewReportWriter(disk, config.OutputDirectory, config.ReportFormat),
		logger,
		core.Settings{
			ScratchDirectory: config.ScratchDirectory,
			MessageBuffer:    config.MessageBuffer,
			Ignore:           ignore,
		},
	)

	return start(analyzer, options, stdout)
}

type runStarter interface {
	Start(options []*contracts.Option) (*core.Run, error)
}

// start hands the opened archives to a run; archives no run took over are
// closed again.
func start(analyzer runStarter, options []*contracts.Option, stdout io.Writer) (core.Result, error) {
	run, err := analyzer.Start(options)
	if err != nil {
		closeArchives(options)
		return core.Result{}, err
	}
	return core.Observe(run, NewPrinter(stdout)), nil
}

func closeArchives(options []*contracts.Option) {
	for _, option := range options {
		_ = option.Archive.Close()
	}
}
