package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mholt/archiver"
	"github.com/nwaples/rardecode"

	"github.com/clayne/mod-analyzer/contracts"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrEntryNotFound     = errors.New("archive entry not found")
	ErrClosed            = errors.New("archive already closed")
)

// Reader indexes an archive once on open and walks it again for each
// extraction batch. Nothing is held open between calls.
type Reader struct {
	path    string
	walker  archiver.Walker
	entries []contracts.Entry
	mutex   sync.Mutex
	closed  bool
}

func Open(path string) (*Reader, error) {
	format, err := archiver.ByExtension(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	walker, ok := format.(archiver.Walker)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot be walked", ErrUnsupportedFormat, filepath.Base(path))
	}

	reader := &Reader{path: path, walker: walker}
	err = walker.Walk(path, func(file archiver.File) error {
		name := NormalizePath(entryName(file))
		if name == "" {
			return nil
		}
		reader.entries = append(reader.entries, contracts.Entry{
			Path:        name,
			Size:        file.Size(),
			IsDirectory: file.IsDir(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return reader, nil
}

func (this *Reader) Path() string {
	return this.path
}

// Entries returns a copy of the indexed entries in container order.
func (this *Reader) Entries() []contracts.Entry {
	entries := make([]contracts.Entry, len(this.entries))
	copy(entries, this.entries)
	return entries
}

// Extract writes the entry identified by its normalized path to destination,
// replacing any existing file.
func (this *Reader) Extract(entry string, destination string) error {
	return this.ExtractAll(map[string]string{entry: destination})
}

// ExtractAll walks the archive once, copying each requested entry to its
// destination. The walk stops as soon as every entry has been written.
func (this *Reader) ExtractAll(targets map[string]string) error {
	this.mutex.Lock()
	closed := this.closed
	this.mutex.Unlock()
	if closed {
		return ErrClosed
	}
	if len(targets) == 0 {
		return nil
	}

	pending := make(map[string]string, len(targets))
	for entry, destination := range targets {
		pending[NormalizePath(entry)] = destination
	}
	err := this.walker.Walk(this.path, func(file archiver.File) error {
		if file.IsDir() {
			return nil
		}
		name := NormalizePath(entryName(file))
		destination, wanted := pending[name]
		if !wanted {
			return nil
		}
		delete(pending, name)
		if err := copyToFile(file, destination); err != nil {
			return fmt.Errorf("extract %q: %w", name, err)
		}
		if len(pending) == 0 {
			return archiver.ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		missing := make([]string, 0, len(pending))
		for name := range pending {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrEntryNotFound, strings.Join(missing, ", "))
	}
	return nil
}

func (this *Reader) Close() error {
	this.mutex.Lock()
	defer this.mutex.Unlock()
	this.closed = true
	return nil
}

func copyToFile(source io.Reader, destination string) error {
	err := os.MkdirAll(filepath.Dir(destination), 0755)
	if err != nil {
		return err
	}
	target, err := os.Create(destination)
	if err != nil {
		return err
	}
	_, err = io.Copy(target, source)
	if closeErr := target.Close(); err == nil {
		err = closeErr
	}
	return err
}

func entryName(file archiver.File) string {
	switch header := file.Header.(type) {
	case zip.FileHeader:
		return header.Name
	case *zip.FileHeader:
		return header.Name
	case *tar.Header:
		return header.Name
	case *rardecode.FileHeader:
		return header.Name
	default:
		return file.Name()
	}
}
