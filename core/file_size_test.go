package core

import (
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestFileSizeFixture(t *testing.T) {
	gunit.Run(new(FileSizeFixture), t)
}

type FileSizeFixture struct {
	*gunit.Fixture
}

func (this *FileSizeFixture) TestHumanFileSizeWithZero() {
	this.So(humanFileSize(0), should.Equal, "0 B")
}

func (this *FileSizeFixture) TestHumanFileSizeBytes() {
	this.So(humanFileSize(512), should.Equal, "512 B")
}

func (this *FileSizeFixture) TestHumanFileSizeMegabytes() {
	this.So(humanFileSize(250_000_000), should.Equal, "238.42 MB")
}

func (this *FileSizeFixture) TestHumanFileSizeBeyondLargestSuffix() {
	this.So(humanFileSize(2048*1024*1024*1024*1024), should.Equal, "2048 TB")
}

func (this *FileSizeFixture) TestRound() {
	rounded := round(26.2245, .5, 3)
	this.So(rounded, should.Equal, 26.225)
}
