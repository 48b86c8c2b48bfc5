package shell

import (
	"bytes"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

type InMemoryFileSystem struct {
	mutex       sync.Mutex
	fileSystem  map[string]*file
	directories map[string]struct{}
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{
		fileSystem:  make(map[string]*file),
		directories: make(map[string]struct{}),
	}
}

// Listing returns the stored file paths in sorted order.
func (this *InMemoryFileSystem) Listing() (paths []string) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	for path := range this.fileSystem {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (this *InMemoryFileSystem) Open(path string) (io.ReadCloser, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(target.contents)), nil
}

func (this *InMemoryFileSystem) Create(path string) (io.WriteCloser, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	created := new(file)
	this.fileSystem[path] = created
	return created, nil
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return target.contents, nil
}

func (this *InMemoryFileSystem) WriteFile(path string, content []byte) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.fileSystem[path] = &file{contents: content}
	return nil
}

func (this *InMemoryFileSystem) MkdirAll(path string) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	this.directories[path] = struct{}{}
	return nil
}

func (this *InMemoryFileSystem) DirectoryExists(path string) bool {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	_, found := this.directories[path]
	return found
}

func (this *InMemoryFileSystem) Delete(path string) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	if _, found := this.fileSystem[path]; !found {
		return os.ErrNotExist
	}
	delete(this.fileSystem, path)
	return nil
}

func (this *InMemoryFileSystem) DeleteAll(path string) error {
	this.mutex.Lock()
	defer this.mutex.Unlock()

	prefix := strings.TrimSuffix(path, "/") + "/"
	for key := range this.fileSystem {
		if key == path || strings.HasPrefix(key, prefix) {
			delete(this.fileSystem, key)
		}
	}
	for key := range this.directories {
		if key == path || strings.HasPrefix(key, prefix) {
			delete(this.directories, key)
		}
	}
	return nil
}

/////////////////////////////////////////////////

type file struct {
	contents []byte
}

func (this *file) Write(p []byte) (n int, err error) {
	this.contents = append(this.contents, p...)
	return len(p), nil
}

func (this *file) Close() error {
	return nil
}
