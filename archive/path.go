package archive

import (
	"path"
	"strings"
)

// NormalizePath converts an archive entry name to slash-separated form without
// leading "./", leading "/" or trailing "/". Both "/" and "\" are accepted.
func NormalizePath(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, `\`, "/")
	raw = strings.TrimPrefix(raw, "./")
	raw = path.Clean("/" + raw)
	raw = strings.TrimPrefix(raw, "/")
	if raw == "." {
		return ""
	}
	return raw
}

// OptionName derives the display name of an archive from its file name.
func OptionName(filename string) string {
	name := path.Base(NormalizePath(filename))
	for _, extension := range compoundExtensions {
		if strings.HasSuffix(strings.ToLower(name), extension) {
			return name[:len(name)-len(extension)]
		}
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

var compoundExtensions = []string{".tar.gz", ".tar.bz2", ".tar.xz", ".tar.lz4", ".tar.sz"}
