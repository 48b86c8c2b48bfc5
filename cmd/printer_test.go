package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestPrinterFixture(t *testing.T) {
	gunit.Run(new(PrinterFixture), t)
}

type PrinterFixture struct {
	*gunit.Fixture
	output  *bytes.Buffer
	printer *Printer
}

func (this *PrinterFixture) Setup() {
	this.output = new(bytes.Buffer)
	this.printer = NewPrinter(this.output)
}

func (this *PrinterFixture) TestMessagesPrintedOnePerLineInOrder() {
	this.printer.OnMessage("Analyzing Retexture", true)
	this.printer.OnMessage("Detected plain archive", false)

	lines := strings.Split(strings.TrimSpace(this.output.String()), "\n")
	this.So(lines, should.HaveLength, 2)
	this.So(lines[0], should.ContainSubstring, "Analyzing Retexture")
	this.So(lines[1], should.ContainSubstring, "Detected plain archive")
}

func (this *PrinterFixture) TestCompletion() {
	this.So(this.printer.Completed(), should.BeFalse)

	this.printer.OnCompleted()

	this.So(this.printer.Completed(), should.BeTrue)
}
