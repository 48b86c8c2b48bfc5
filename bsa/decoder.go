package bsa

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clayne/mod-analyzer/contracts"
)

var (
	ErrUnknownFormat      = errors.New("not a BSA or BA2 archive")
	ErrUnsupportedVersion = errors.New("unsupported asset archive version")
	ErrMissingNames       = errors.New("asset archive does not store file names")
	ErrTruncated          = errors.New("asset archive is truncated")
	ErrTooManyEntries     = errors.New("asset archive declares too many entries")
)

const (
	bsaMagic = "BSA\x00"
	ba2Magic = "BTDX"

	maxEntries = 1 << 22

	// longest file name a BSA name table may hold, terminator included
	maxNameLength = 1 << 9

	unbounded = 1 << 62
)

// Decoder lists the file paths stored in Bethesda asset archives: BSA
// (versions 103, 104 and 105) and BA2 (general and texture archives).
type Decoder struct {
	storage contracts.FileOpener
}

func NewDecoder(storage contracts.FileOpener) *Decoder {
	return &Decoder{storage: storage}
}

func (this *Decoder) DecodeAssets(path string) ([]string, error) {
	source, err := this.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()

	at, err := readerAt(source)
	if err != nil {
		return nil, err
	}
	return Decode(at)
}

// Decode dispatches on the archive's magic bytes.
func Decode(at io.ReaderAt) ([]string, error) {
	var magic [4]byte
	if _, err := at.ReadAt(magic[:], 0); err != nil {
		return nil, truncated(err)
	}
	switch string(magic[:]) {
	case bsaMagic:
		return decodeBSA(at)
	case ba2Magic:
		return decodeBA2(at)
	default:
		return nil, ErrUnknownFormat
	}
}

func readerAt(source io.Reader) (io.ReaderAt, error) {
	if at, ok := source.(io.ReaderAt); ok {
		return at, nil
	}
	all, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(all), nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}

func checkCount(count uint32) error {
	if count > maxEntries {
		return fmt.Errorf("%w: %d", ErrTooManyEntries, count)
	}
	return nil
}

func joinName(folder, name string) string {
	folder = strings.ReplaceAll(folder, `\`, "/")
	name = strings.ReplaceAll(name, `\`, "/")
	if folder == "" || folder == "." {
		return name
	}
	return folder + "/" + name
}
