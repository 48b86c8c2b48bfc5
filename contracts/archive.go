package contracts

// Entry is one item of an opened archive. Path is normalized to forward
// slashes without leading or trailing separators and identifies the entry
// for as long as the archive stays open.
type Entry struct {
	Path        string
	Size        int64
	IsDirectory bool
}

type Archive interface {
	Path() string
	Entries() []Entry
	Extract(entry string, destination string) error

	// ExtractAll writes every entry named in targets (entry path ->
	// destination) in a single pass over the archive.
	ExtractAll(targets map[string]string) error
	Close() error
}
