package contracts

import "io"

type FileOpener interface {
	Open(path string) (io.ReadCloser, error)
}

type FileCreator interface {
	Create(path string) (io.WriteCloser, error)
}

type DirectoryMaker interface {
	MkdirAll(path string) error
}

type Deleter interface {
	Delete(path string) error
	DeleteAll(path string) error
}
