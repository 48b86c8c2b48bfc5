package contracts

import (
	"errors"
	"strings"
)

const (
	ReportFormatJSON = "json"
	ReportFormatYAML = "yaml"
)

type Config struct {
	OutputDirectory  string   `mapstructure:"output_directory"`
	ScratchDirectory string   `mapstructure:"scratch_directory"`
	ReportFormat     string   `mapstructure:"report_format"`
	Ignore           []string `mapstructure:"ignore"`
	BaseInstallPath  string   `mapstructure:"base_install_path"`
	DefaultOption    string   `mapstructure:"default_option"`
	LogLevel         string   `mapstructure:"log_level"`
	MessageBuffer    int      `mapstructure:"message_buffer"`
}

func (this Config) Validate() error {
	if strings.TrimSpace(this.OutputDirectory) == "" {
		return blankOutputDirectoryErr
	}
	if strings.TrimSpace(this.ScratchDirectory) == "" {
		return blankScratchDirectoryErr
	}
	if this.ReportFormat != ReportFormatJSON && this.ReportFormat != ReportFormatYAML {
		return unsupportedReportFormatErr
	}
	if this.MessageBuffer < 0 {
		return negativeMessageBufferErr
	}
	for _, pattern := range this.Ignore {
		if strings.TrimSpace(pattern) == "" {
			return blankIgnorePatternErr
		}
	}
	return nil
}

var (
	blankOutputDirectoryErr    = errors.New("output directory should not be blank")
	blankScratchDirectoryErr   = errors.New("scratch directory should not be blank")
	unsupportedReportFormatErr = errors.New("report format must be json or yaml")
	negativeMessageBufferErr   = errors.New("message buffer must not be negative")
	blankIgnorePatternErr      = errors.New("ignore patterns should not be blank")
)
