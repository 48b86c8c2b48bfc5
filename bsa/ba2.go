package bsa

import (
	"bufio"
	"encoding/binary"
	"io"
)

type ba2Header struct {
	Magic           [4]byte
	Version         uint32
	Type            [4]byte
	FileCount       uint32
	NameTableOffset uint64
}

// decodeBA2 reads the name table, a sequence of length-prefixed paths stored
// after the file data.
func decodeBA2(at io.ReaderAt) ([]string, error) {
	var header ba2Header
	if err := binary.Read(io.NewSectionReader(at, 0, unbounded), binary.LittleEndian, &header); err != nil {
		return nil, truncated(err)
	}
	switch header.Version {
	case 1, 2, 3, 7, 8:
	default:
		return nil, ErrUnsupportedVersion
	}
	if kind := string(header.Type[:]); kind != "GNRL" && kind != "DX10" {
		return nil, ErrUnsupportedVersion
	}
	if err := checkCount(header.FileCount); err != nil {
		return nil, err
	}
	if header.NameTableOffset == 0 {
		return nil, ErrMissingNames
	}

	reader := bufio.NewReader(io.NewSectionReader(at, int64(header.NameTableOffset), unbounded))
	var paths []string
	var length uint16
	for index := uint32(0); index < header.FileCount; index++ {
		if err := binary.Read(reader, binary.LittleEndian, &length); err != nil {
			return nil, truncated(err)
		}
		name := make([]byte, length)
		if _, err := io.ReadFull(reader, name); err != nil {
			return nil, truncated(err)
		}
		paths = append(paths, joinName("", string(name)))
	}
	return paths, nil
}
