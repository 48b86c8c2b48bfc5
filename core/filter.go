package core

import "github.com/clayne/mod-analyzer/contracts"

// discardEmpty keeps, in order, the options holding at least one asset or plugin.
func discardEmpty(original []*contracts.Option) (filtered []*contracts.Option) {
	for _, option := range original {
		if !option.IsEmpty() {
			filtered = append(filtered, option)
		}
	}
	return filtered
}
