package shell

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestDiskFixture(t *testing.T) {
	gunit.Run(new(DiskFixture), t)
}

type DiskFixture struct {
	*gunit.Fixture
	root       string
	fileSystem *DiskFileSystem
}

func (this *DiskFixture) Setup() {
	this.root, _ = os.MkdirTemp("", "disk-fixture-*")
	this.fileSystem = NewDiskFileSystem()
}

func (this *DiskFixture) Teardown() {
	_ = os.RemoveAll(this.root)
}

func (this *DiskFixture) TestCreateMakesParentDirectories() {
	path := filepath.Join(this.root, "reports", "nested", "out.json")

	writer, err := this.fileSystem.Create(path)
	this.So(err, should.BeNil)
	_, _ = writer.Write([]byte("{}"))
	this.So(writer.Close(), should.BeNil)

	raw, err := os.ReadFile(path)
	this.So(err, should.BeNil)
	this.So(string(raw), should.Equal, "{}")
}

func (this *DiskFixture) TestCreateAndOpen() {
	path := filepath.Join(this.root, "scratch", "file.bin")
	writer, _ := this.fileSystem.Create(path)
	_, _ = writer.Write([]byte("payload"))
	_ = writer.Close()

	reader, err := this.fileSystem.Open(path)
	this.So(err, should.BeNil)
	defer func() { _ = reader.Close() }()
	raw, _ := io.ReadAll(reader)
	this.So(string(raw), should.Equal, "payload")
}

func (this *DiskFixture) TestMkdirAll() {
	directory := filepath.Join(this.root, "a", "b")

	this.So(this.fileSystem.MkdirAll(directory), should.BeNil)

	info, err := os.Stat(directory)
	this.So(err, should.BeNil)
	this.So(info.IsDir(), should.BeTrue)
}

func (this *DiskFixture) TestDeleteAll() {
	directory := filepath.Join(this.root, "run")
	_ = os.MkdirAll(filepath.Join(directory, "a"), 0755)
	_ = os.WriteFile(filepath.Join(directory, "a", "b.txt"), []byte("x"), 0644)

	this.So(this.fileSystem.DeleteAll(directory), should.BeNil)

	_, err := os.Stat(directory)
	this.So(os.IsNotExist(err), should.BeTrue)
}

func (this *DiskFixture) TestDelete() {
	path := filepath.Join(this.root, "file.txt")
	_ = os.WriteFile(path, []byte("x"), 0644)

	this.So(this.fileSystem.Delete(path), should.BeNil)
	this.So(os.IsNotExist(this.fileSystem.Delete(path)), should.BeTrue)
}
