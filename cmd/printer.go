package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes a run's progress messages to a terminal, status lines in bold.
type Printer struct {
	writer    io.Writer
	status    lipgloss.Style
	detail    lipgloss.Style
	completed bool
}

func NewPrinter(writer io.Writer) *Printer {
	renderer := lipgloss.NewRenderer(writer)
	return &Printer{
		writer: writer,
		status: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail: renderer.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

func (this *Printer) OnMessage(text string, isStatus bool) {
	if isStatus {
		text = this.status.Render(text)
	} else {
		text = this.detail.Render(text)
	}
	_, _ = fmt.Fprintln(this.writer, text)
}

func (this *Printer) OnCompleted() {
	this.completed = true
}

func (this *Printer) Completed() bool {
	return this.completed
}
