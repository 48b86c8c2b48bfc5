package bsa

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

const (
	bsaIncludeDirectoryNames = 0x1
	bsaIncludeFileNames      = 0x2

	bsaHeaderSize     = 36
	bsaFileRecordSize = 16
)

type bsaHeader struct {
	Magic             [4]byte
	Version           uint32
	Offset            uint32
	Flags             uint32
	FolderCount       uint32
	FileCount         uint32
	FolderNamesLength uint32
	FileNamesLength   uint32
	FileFlags         uint16
	Padding           uint16
}

// folderRecordSize grew from 16 to 24 bytes with the 64-bit offsets of version 105.
func folderRecordSize(version uint32) (int, bool) {
	switch version {
	case 103, 104:
		return 16, true
	case 105:
		return 24, true
	default:
		return 0, false
	}
}

func decodeBSA(at io.ReaderAt) ([]string, error) {
	reader := bufio.NewReader(io.NewSectionReader(at, 0, unbounded))

	var header bsaHeader
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return nil, truncated(err)
	}
	recordSize, supported := folderRecordSize(header.Version)
	if !supported {
		return nil, ErrUnsupportedVersion
	}
	if header.Flags&bsaIncludeDirectoryNames == 0 || header.Flags&bsaIncludeFileNames == 0 {
		return nil, ErrMissingNames
	}
	if err := checkCount(header.FolderCount); err != nil {
		return nil, err
	}
	if err := checkCount(header.FileCount); err != nil {
		return nil, err
	}
	if uint64(header.FileNamesLength) > uint64(header.FileCount)*maxNameLength {
		return nil, fmt.Errorf("%w: %d bytes of file names", ErrTooManyEntries, header.FileNamesLength)
	}
	if header.Offset > bsaHeaderSize {
		if _, err := reader.Discard(int(header.Offset - bsaHeaderSize)); err != nil {
			return nil, truncated(err)
		}
	}

	counts := make([]uint32, header.FolderCount)
	record := make([]byte, recordSize)
	for index := range counts {
		if _, err := io.ReadFull(reader, record); err != nil {
			return nil, truncated(err)
		}
		counts[index] = binary.LittleEndian.Uint32(record[8:12])
	}

	folders := make([]string, header.FolderCount)
	for index := range folders {
		length, err := reader.ReadByte()
		if err != nil {
			return nil, truncated(err)
		}
		name := make([]byte, length)
		if _, err = io.ReadFull(reader, name); err != nil {
			return nil, truncated(err)
		}
		folders[index] = string(bytes.TrimRight(name, "\x00"))
		if _, err = reader.Discard(int(counts[index]) * bsaFileRecordSize); err != nil {
			return nil, truncated(err)
		}
	}

	names := bufio.NewReader(io.LimitReader(reader, int64(header.FileNamesLength)))

	var paths []string
	for index, folder := range folders {
		for file := uint32(0); file < counts[index]; file++ {
			name, err := names.ReadString(0)
			if err != nil {
				return nil, truncated(err)
			}
			paths = append(paths, joinName(folder, strings.TrimSuffix(name, "\x00")))
		}
	}
	return paths, nil
}
