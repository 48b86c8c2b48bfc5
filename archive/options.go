package archive

import (
	"github.com/clayne/mod-analyzer/contracts"
)

// OpenOptions opens every path as a top-level option, in order. On failure
// the archives opened so far are closed again.
func OpenOptions(paths []string, baseInstallPath string) ([]*contracts.Option, error) {
	options := make([]*contracts.Option, 0, len(paths))
	for _, path := range paths {
		reader, err := Open(path)
		if err != nil {
			closeAll(options)
			return nil, err
		}
		option := contracts.NewOption(OptionName(path), reader)
		option.BaseInstallPath = NormalizePath(baseInstallPath)
		options = append(options, option)
	}
	return options, nil
}

func closeAll(options []*contracts.Option) {
	for _, option := range options {
		_ = option.Archive.Close()
	}
}
