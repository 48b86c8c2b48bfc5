package contracts

// Plugin summarizes the header record of a plugin file (esp, esm, esl).
type Plugin struct {
	Filename    string   `json:"filename" yaml:"filename"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Masters     []string `json:"masters" yaml:"masters"`
	Version     float32  `json:"version" yaml:"version"`
	RecordCount int32    `json:"recordCount" yaml:"recordCount"`
	IsMaster    bool     `json:"isMaster" yaml:"isMaster"`
	IsLight     bool     `json:"isLight" yaml:"isLight"`
	IsLocalized bool     `json:"isLocalized" yaml:"isLocalized"`
	Size        int64    `json:"size" yaml:"size"`
}
