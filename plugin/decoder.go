package plugin

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/clayne/mod-analyzer/contracts"
)

var (
	ErrInvalidSignature = errors.New("plugin does not start with a TES4 record")
	ErrMissingHeader    = errors.New("plugin header record has no HEDR subrecord")
	ErrTruncated        = errors.New("plugin header record is truncated")
)

const (
	flagMaster    = 0x1
	flagLocalized = 0x80
	flagLight     = 0x200

	// Oblivion record headers are 20 bytes; later games append a form
	// version and make them 24.
	shortRecordHeader = 20
	longRecordHeader  = 24

	maxHeaderRecord = 16 << 20
)

// Decoder reads the TES4 header record at the start of esp, esm and esl files.
type Decoder struct {
	storage contracts.FileOpener
}

func NewDecoder(storage contracts.FileOpener) *Decoder {
	return &Decoder{storage: storage}
}

func (this *Decoder) DecodePlugin(path string) (*contracts.Plugin, error) {
	source, err := this.storage.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = source.Close() }()

	plugin, err := Decode(bufio.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	plugin.Filename = filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".esm":
		plugin.IsMaster = true
	case ".esl":
		plugin.IsMaster, plugin.IsLight = true, true
	}
	return plugin, nil
}

// Decode parses the header record from the start of a plugin stream.
func Decode(source io.Reader) (*contracts.Plugin, error) {
	var prefix [longRecordHeader + 4]byte
	if _, err := io.ReadFull(source, prefix[:]); err != nil {
		return nil, truncated(err)
	}
	if string(prefix[0:4]) != "TES4" {
		return nil, ErrInvalidSignature
	}

	dataSize := binary.LittleEndian.Uint32(prefix[4:8])
	flags := binary.LittleEndian.Uint32(prefix[8:12])
	if dataSize > maxHeaderRecord {
		return nil, fmt.Errorf("%w: header record claims %d bytes", ErrTruncated, dataSize)
	}

	headerSize := longRecordHeader
	if string(prefix[shortRecordHeader:shortRecordHeader+4]) == "HEDR" {
		headerSize = shortRecordHeader
	}

	data := make([]byte, dataSize)
	consumed := copy(data, prefix[headerSize:])
	if _, err := io.ReadFull(source, data[consumed:]); err != nil {
		return nil, truncated(err)
	}

	plugin := &contracts.Plugin{
		Masters:     []string{},
		IsMaster:    flags&flagMaster != 0,
		IsLight:     flags&flagLight != 0,
		IsLocalized: flags&flagLocalized != 0,
	}
	if err := readSubrecords(data, plugin); err != nil {
		return nil, err
	}
	return plugin, nil
}

func readSubrecords(data []byte, plugin *contracts.Plugin) error {
	var (
		hasHeader bool
		oversize  uint32
	)
	for offset := 0; offset < len(data); {
		if len(data)-offset < 6 {
			return ErrTruncated
		}
		kind := string(data[offset : offset+4])
		size := uint32(binary.LittleEndian.Uint16(data[offset+4 : offset+6]))
		offset += 6
		if oversize > 0 {
			size, oversize = oversize, 0
		}
		if uint32(len(data)-offset) < size {
			return ErrTruncated
		}
		field := data[offset : offset+int(size)]
		offset += int(size)

		switch kind {
		case "XXXX":
			if len(field) < 4 {
				return ErrTruncated
			}
			oversize = binary.LittleEndian.Uint32(field)
		case "HEDR":
			if len(field) < 8 {
				return ErrTruncated
			}
			hasHeader = true
			plugin.Version = math.Float32frombits(binary.LittleEndian.Uint32(field[0:4]))
			plugin.RecordCount = int32(binary.LittleEndian.Uint32(field[4:8]))
		case "CNAM":
			plugin.Author = zstring(field)
		case "SNAM":
			plugin.Description = zstring(field)
		case "MAST":
			plugin.Masters = append(plugin.Masters, zstring(field))
		}
	}
	if !hasHeader {
		return ErrMissingHeader
	}
	return nil
}

func zstring(field []byte) string {
	if end := bytes.IndexByte(field, 0); end >= 0 {
		field = field[:end]
	}
	return string(field)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
