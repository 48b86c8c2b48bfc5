package fomod

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/clayne/mod-analyzer/contracts"
)

var ErrInvalidConfig = errors.New("invalid installer configuration")

const (
	requiredOptionName    = "Required Files"
	conditionalOptionName = "Conditional Files"
)

// Parser reads ModuleConfig.xml installer scripts. Every install-step plugin
// becomes an option; required files and each conditional file pattern become
// options of their own.
type Parser struct {
	storage contracts.FileOpener
}

func NewParser(storage contracts.FileOpener) *Parser {
	return &Parser{storage: storage}
}

func (this *Parser) ParseConfig(path string) ([]contracts.ScriptOption, error) {
	source, err := this.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()

	config, err := decode(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return config.options(), nil
}

// decode accepts UTF-8 and, when a byte order mark is present, UTF-16
// documents. The declared encoding is ignored once the text is UTF-8.
func decode(source io.Reader) (*moduleConfig, error) {
	text := transform.NewReader(source, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	decoder := xml.NewDecoder(text)
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }

	config := new(moduleConfig)
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (this *moduleConfig) options() (options []contracts.ScriptOption) {
	if len(this.Required.entries()) > 0 {
		options = append(options, contracts.ScriptOption{Name: requiredOptionName, Files: this.Required.files()})
	}

	for _, step := range this.Steps {
		for _, group := range step.Groups {
			for _, plugin := range group.Plugins {
				options = append(options, contracts.ScriptOption{
					Name:  strings.TrimSpace(plugin.Name),
					Files: plugin.Files.files(),
				})
			}
		}
	}

	for index, pattern := range this.Conditional {
		options = append(options, contracts.ScriptOption{
			Name:  conditionalOptionName + " " + strconv.Itoa(index+1),
			Files: pattern.Files.files(),
		})
	}
	return options
}

///////////////////////////////////////////////////////////

type moduleConfig struct {
	XMLName     xml.Name      `xml:"config"`
	Required    fileList      `xml:"requiredInstallFiles"`
	Steps       []installStep `xml:"installSteps>installStep"`
	Conditional []pattern     `xml:"conditionalFileInstalls>patterns>pattern"`
}

type installStep struct {
	Groups []group `xml:"optionalFileGroups>group"`
}

type group struct {
	Plugins []plugin `xml:"plugins>plugin"`
}

type plugin struct {
	Name  string   `xml:"name,attr"`
	Files fileList `xml:"files"`
}

type pattern struct {
	Files fileList `xml:"files"`
}

// fileList keeps <file> and <folder> elements in document order.
type fileList struct {
	Items []fileItem `xml:",any"`
}

type fileItem struct {
	XMLName     xml.Name
	Source      string `xml:"source,attr"`
	Destination string `xml:"destination,attr"`
}

func (this fileList) entries() (items []fileItem) {
	for _, item := range this.Items {
		if item.XMLName.Local == "file" || item.XMLName.Local == "folder" {
			items = append(items, item)
		}
	}
	return items
}

func (this fileList) files() []contracts.ScriptFile {
	items := this.entries()
	files := make([]contracts.ScriptFile, 0, len(items))
	for _, item := range items {
		files = append(files, contracts.ScriptFile{
			Source:      item.Source,
			Destination: item.Destination,
			Folder:      item.XMLName.Local == "folder",
		})
	}
	return files
}
