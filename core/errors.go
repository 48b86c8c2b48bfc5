package core

import "errors"

var (
	ErrBusy                   = errors.New("an analysis run is already in progress")
	ErrMissingArchive         = errors.New("option has no opened archive")
	ErrMissingInstallerConfig = errors.New("installer-script configuration entry not found")
	ErrPluginDecode           = errors.New("plugin could not be decoded")
	ErrPanic                  = errors.New("analysis panicked")
)
