package contracts

// AssetDecoder lists the paths packed inside an asset container (ba2, bsa)
// extracted to disk at path.
type AssetDecoder interface {
	DecodeAssets(path string) ([]string, error)
}

// PluginDecoder reads the header record of a plugin file extracted to disk at path.
type PluginDecoder interface {
	DecodePlugin(path string) (*Plugin, error)
}

// ConfigParser turns an installer-script configuration file into named
// options and their file mapping rules.
type ConfigParser interface {
	ParseConfig(path string) ([]ScriptOption, error)
}

type ScriptOption struct {
	Name  string
	Files []ScriptFile
}

// ScriptFile maps a source file or folder (possibly with wildcards) onto a
// destination. An empty Destination means the install root.
type ScriptFile struct {
	Source      string
	Destination string
	Folder      bool
}
