package core

import (
	"path"
	"regexp"
	"strings"

	"github.com/clayne/mod-analyzer/contracts"
)

type ArchiveType int

const (
	Plain ArchiveType = iota
	DirectoryConvention
	InstallerScript
)

func (this ArchiveType) String() string {
	switch this {
	case InstallerScript:
		return "installer script"
	case DirectoryConvention:
		return "directory convention"
	default:
		return "plain"
	}
}

// Detection is the outcome of classifying an archive by its entry paths.
type Detection struct {
	Type            ArchiveType
	BaseInstallPath string
	ConfigEntry     string
	Directories     []string
}

const (
	installerConfigPath = "fomod/moduleconfig.xml"
	nestedConfigSuffix  = "/" + installerConfigPath
)

var conventionDirectory = regexp.MustCompile(`^\d+(\s+|\s*[-_.]\s*)\S`)

// DetectArchiveType classifies an archive from its entries alone. An installer
// configuration nested one directory below the install root moves the install
// root to that directory.
func DetectArchiveType(entries []contracts.Entry, baseInstallPath string) Detection {
	detection := Detection{Type: Plain, BaseInstallPath: baseInstallPath}

	if entry, base, found := findInstallerConfig(entries, baseInstallPath); found {
		detection.Type = InstallerScript
		detection.ConfigEntry = entry
		detection.BaseInstallPath = base
		return detection
	}

	detection.Directories = ConventionDirectories(entries, baseInstallPath)
	if len(detection.Directories) > 0 {
		detection.Type = DirectoryConvention
	}
	return detection
}

func findInstallerConfig(entries []contracts.Entry, baseInstallPath string) (entry string, base string, found bool) {
	for _, candidate := range entries {
		if candidate.IsDirectory {
			continue
		}
		relative, inside := relativePath(candidate.Path, baseInstallPath)
		if !inside {
			continue
		}
		if strings.EqualFold(relative, installerConfigPath) {
			return candidate.Path, baseInstallPath, true
		}
		if found || len(relative) <= len(nestedConfigSuffix) {
			continue
		}
		split := len(relative) - len(nestedConfigSuffix)
		prefix := relative[:split]
		if strings.EqualFold(relative[split:], nestedConfigSuffix) && !strings.Contains(prefix, "/") {
			entry, base, found = candidate.Path, joinPath(baseInstallPath, prefix), true
		}
	}
	return entry, base, found
}

// ConventionDirectories lists, in discovery order, the top-level directories
// below the install root whose names follow the numbered package convention
// ("00 Core", "10 - Textures") and that contain at least one file.
func ConventionDirectories(entries []contracts.Entry, baseInstallPath string) (directories []string) {
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDirectory {
			continue
		}
		relative, inside := relativePath(entry.Path, baseInstallPath)
		if !inside {
			continue
		}
		slash := strings.Index(relative, "/")
		if slash <= 0 {
			continue
		}
		directory := relative[:slash]
		if !conventionDirectory.MatchString(directory) {
			continue
		}
		if _, found := seen[directory]; found {
			continue
		}
		seen[directory] = struct{}{}
		directories = append(directories, directory)
	}
	return directories
}

// relativePath strips the install root (matched case-insensitively) from an entry path.
func relativePath(entryPath, baseInstallPath string) (string, bool) {
	if baseInstallPath == "" {
		return entryPath, true
	}
	if len(entryPath) <= len(baseInstallPath) || entryPath[len(baseInstallPath)] != '/' {
		return "", false
	}
	if !strings.EqualFold(entryPath[:len(baseInstallPath)], baseInstallPath) {
		return "", false
	}
	return entryPath[len(baseInstallPath)+1:], true
}

func cleanPath(raw string) string {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), `\`, "/")
	raw = strings.TrimPrefix(path.Clean("/"+raw), "/")
	if raw == "." {
		return ""
	}
	return raw
}

func joinPath(elements ...string) string {
	return cleanPath(path.Join(elements...))
}
