package plugin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"

	"github.com/clayne/mod-analyzer/shell"
)

func TestDecoderFixture(t *testing.T) {
	gunit.Run(new(DecoderFixture), t)
}

type DecoderFixture struct {
	*gunit.Fixture
	storage *shell.InMemoryFileSystem
	decoder *Decoder
}

func (this *DecoderFixture) Setup() {
	this.storage = shell.NewInMemoryFileSystem()
	this.decoder = NewDecoder(this.storage)
}

func subrecord(kind string, data []byte) []byte {
	buffer := new(bytes.Buffer)
	buffer.WriteString(kind)
	_ = binary.Write(buffer, binary.LittleEndian, uint16(len(data)))
	buffer.Write(data)
	return buffer.Bytes()
}

func hedr(version float32, records int32) []byte {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], math.Float32bits(version))
	binary.LittleEndian.PutUint32(data[4:8], uint32(records))
	binary.LittleEndian.PutUint32(data[8:12], 0x800)
	return subrecord("HEDR", data)
}

func zstr(value string) []byte {
	return append([]byte(value), 0)
}

func record(headerSize int, flags uint32, fields ...[]byte) []byte {
	data := bytes.Join(fields, nil)
	header := make([]byte, headerSize)
	copy(header, "TES4")
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(data)))
	binary.LittleEndian.PutUint32(header[8:12], flags)
	return append(header, data...)
}

func (this *DecoderFixture) TestDecodeModernHeader() {
	content := record(24, flagMaster|flagLocalized,
		hedr(1.0, 1234),
		subrecord("CNAM", zstr("Modder")),
		subrecord("SNAM", zstr("A description")),
		subrecord("MAST", zstr("Fallout4.esm")),
		subrecord("DATA", make([]byte, 8)),
		subrecord("MAST", zstr("DLCRobot.esm")),
		subrecord("DATA", make([]byte, 8)),
	)
	_ = this.storage.WriteFile("/scratch/0/Weapons.esp", content)

	plugin, err := this.decoder.DecodePlugin("/scratch/0/Weapons.esp")

	this.So(err, should.BeNil)
	this.So(plugin.Filename, should.Equal, "Weapons.esp")
	this.So(plugin.Author, should.Equal, "Modder")
	this.So(plugin.Description, should.Equal, "A description")
	this.So(plugin.Masters, should.Resemble, []string{"Fallout4.esm", "DLCRobot.esm"})
	this.So(plugin.Version, should.Equal, float32(1.0))
	this.So(plugin.RecordCount, should.Equal, int32(1234))
	this.So(plugin.IsMaster, should.BeTrue)
	this.So(plugin.IsLocalized, should.BeTrue)
	this.So(plugin.IsLight, should.BeFalse)
}

func (this *DecoderFixture) TestDecodeShortHeader() {
	content := record(20, 0, hedr(0.8, 7), subrecord("CNAM", zstr("Old")))

	plugin, err := Decode(bytes.NewReader(content))

	this.So(err, should.BeNil)
	this.So(plugin.Author, should.Equal, "Old")
	this.So(plugin.RecordCount, should.Equal, int32(7))
	this.So(plugin.Masters, should.BeEmpty)
}

func (this *DecoderFixture) TestOversizedSubrecord() {
	size := make([]byte, 4)
	binary.LittleEndian.PutUint32(size, 5)
	content := record(24, 0, hedr(1.7, 1), subrecord("XXXX", size), []byte("SNAM\x00\x00long\x00"))

	plugin, err := Decode(bytes.NewReader(content))

	this.So(err, should.BeNil)
	this.So(plugin.Description, should.Equal, "long")
}

func (this *DecoderFixture) TestLightFlagAndExtension() {
	_ = this.storage.WriteFile("flagged.esp", record(24, flagLight, hedr(1.0, 1)))
	_ = this.storage.WriteFile("Small.esl", record(24, 0, hedr(1.0, 1)))

	flagged, err1 := this.decoder.DecodePlugin("flagged.esp")
	small, err2 := this.decoder.DecodePlugin("Small.esl")

	this.So(err1, should.BeNil)
	this.So(err2, should.BeNil)
	this.So(flagged.IsLight, should.BeTrue)
	this.So(flagged.IsMaster, should.BeFalse)
	this.So(small.IsLight, should.BeTrue)
	this.So(small.IsMaster, should.BeTrue)
}

func (this *DecoderFixture) TestWrongSignature() {
	content := record(24, 0, hedr(1.0, 1))
	copy(content, "BTDX")

	_, err := Decode(bytes.NewReader(content))

	this.So(err, should.Equal, ErrInvalidSignature)
}

func (this *DecoderFixture) TestMissingHeaderSubrecord() {
	content := record(24, 0, subrecord("CNAM", zstr("Nobody")), subrecord("SNAM", zstr("x")))

	_, err := Decode(bytes.NewReader(content))

	this.So(err, should.Equal, ErrMissingHeader)
}

func (this *DecoderFixture) TestTruncatedRecord() {
	content := record(24, 0, hedr(1.0, 1), subrecord("CNAM", zstr("Modder")))

	_, err := Decode(bytes.NewReader(content[:len(content)-3]))

	this.So(errors.Is(err, ErrTruncated), should.BeTrue)
}

func (this *DecoderFixture) TestTooShortForAHeader() {
	_, err := Decode(bytes.NewReader([]byte("TES4")))

	this.So(err, should.Equal, ErrTruncated)
}
