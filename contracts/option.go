package contracts

// Option is one selectable installation choice found in a mod package.
type Option struct {
	Name                        string    `json:"name" yaml:"name"`
	IsDefault                   bool      `json:"isDefault" yaml:"isDefault"`
	IsDirectoryConventionOption bool      `json:"isDirectoryConventionOption" yaml:"isDirectoryConventionOption"`
	Assets                      []string  `json:"assets" yaml:"assets"`
	Plugins                     []*Plugin `json:"plugins" yaml:"plugins"`
	Size                        int64     `json:"size" yaml:"size"`
	ContentHash                 string    `json:"contentHash" yaml:"contentHash"`

	Archive         Archive `json:"-" yaml:"-"`
	BaseInstallPath string  `json:"-" yaml:"-"`

	assets map[string]struct{}
}

func NewOption(name string, archive Archive) *Option {
	return &Option{Name: name, Archive: archive, Assets: []string{}, Plugins: []*Plugin{}}
}

// AddAsset appends path unless it is empty or already present.
func (this *Option) AddAsset(path string) bool {
	if path == "" {
		return false
	}
	if this.assets == nil {
		this.assets = make(map[string]struct{}, len(this.Assets))
		for _, existing := range this.Assets {
			this.assets[existing] = struct{}{}
		}
	}
	if _, found := this.assets[path]; found {
		return false
	}
	this.assets[path] = struct{}{}
	this.Assets = append(this.Assets, path)
	return true
}

func (this *Option) AddPlugin(plugin *Plugin) {
	this.Plugins = append(this.Plugins, plugin)
}

func (this *Option) IsEmpty() bool {
	return len(this.Assets) == 0 && len(this.Plugins) == 0
}

// Derive creates an option sharing this option's archive, install root and content hash.
func (this *Option) Derive(name string) *Option {
	derived := NewOption(name, this.Archive)
	derived.BaseInstallPath = this.BaseInstallPath
	derived.ContentHash = this.ContentHash
	return derived
}
