package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/clayne/mod-analyzer/contracts"
)

const EnvironmentPrefix = "MOD_ANALYZER"

func DefaultConfig() contracts.Config {
	return contracts.Config{
		OutputDirectory:  "reports",
		ScratchDirectory: filepath.Join(os.TempDir(), "mod-analyzer"),
		ReportFormat:     contracts.ReportFormatJSON,
		Ignore:           []string{},
		LogLevel:         "info",
		MessageBuffer:    64,
	}
}

// flagKeys pairs each command-line flag with its configuration key.
var flagKeys = map[string]string{
	"output-directory":  "output_directory",
	"scratch-directory": "scratch_directory",
	"report-format":     "report_format",
	"ignore":            "ignore",
	"base-install-path": "base_install_path",
	"default-option":    "default_option",
	"log-level":         "log_level",
	"message-buffer":    "message_buffer",
}

func BindFlags(flags *pflag.FlagSet) {
	defaults := DefaultConfig()
	flags.StringP("output-directory", "o", defaults.OutputDirectory, "Directory receiving the report.")
	flags.String("scratch-directory", defaults.ScratchDirectory, "Directory for temporary extractions.")
	flags.StringP("report-format", "f", defaults.ReportFormat, "Report format: json or yaml.")
	flags.StringSlice("ignore", defaults.Ignore, "Gitignore-style pattern of archive entries to skip (repeatable).")
	flags.String("base-install-path", defaults.BaseInstallPath, "Directory inside each archive that holds the installable files.")
	flags.String("default-option", defaults.DefaultOption, "Name of the archive that names the report.")
	flags.String("log-level", defaults.LogLevel, "Log level: debug, info, warn or error.")
	flags.Int("message-buffer", defaults.MessageBuffer, "Number of progress messages buffered between the analysis and the console.")
}

// LoadConfig merges, from lowest to highest precedence, the defaults, the
// optional configuration file, MOD_ANALYZER_* environment variables and any
// flags set on the command line.
func LoadConfig(flags *pflag.FlagSet, configFile string) (contracts.Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output_directory", defaults.OutputDirectory)
	v.SetDefault("scratch_directory", defaults.ScratchDirectory)
	v.SetDefault("report_format", defaults.ReportFormat)
	v.SetDefault("ignore", defaults.Ignore)
	v.SetDefault("base_install_path", defaults.BaseInstallPath)
	v.SetDefault("default_option", defaults.DefaultOption)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("message_buffer", defaults.MessageBuffer)

	v.SetEnvPrefix(EnvironmentPrefix)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return contracts.Config{}, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return contracts.Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var config contracts.Config
	if err := v.Unmarshal(&config); err != nil {
		return contracts.Config{}, fmt.Errorf("parse config: %w", err)
	}
	config.ReportFormat = strings.ToLower(strings.TrimSpace(config.ReportFormat))
	if err := config.Validate(); err != nil {
		return contracts.Config{}, err
	}
	return config, nil
}
