package shell

import (
	"io"
	"os"
	"path/filepath"
)

type DiskFileSystem struct{}

func NewDiskFileSystem() *DiskFileSystem {
	return &DiskFileSystem{}
}

func (this *DiskFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (this *DiskFileSystem) Create(path string) (io.WriteCloser, error) {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return nil, err
	}
	return os.Create(path)
}

func (this *DiskFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (this *DiskFileSystem) Delete(path string) error {
	return os.Remove(path)
}

func (this *DiskFileSystem) DeleteAll(path string) error {
	return os.RemoveAll(path)
}
