package core

import (
	"sync/atomic"

	"github.com/clayne/mod-analyzer/contracts"
)

type RunState int32

const (
	Idle RunState = iota
	Running
	Completed
)

func (this RunState) String() string {
	switch this {
	case Running:
		return "running"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

type Result struct {
	Snapshot   contracts.Snapshot
	ReportPath string
	Failed     bool
}

// Run is one analysis executing on its own goroutine. Messages arrive in
// order on a bounded channel which is closed before Done is closed. Callers
// must keep draining Messages (or use Observe) or the run stalls once the
// buffer is full.
type Run struct {
	ID string

	messages chan contracts.Message
	done     chan struct{}
	state    atomic.Int32
	result   Result
}

func newRun(id string, buffer int) *Run {
	return &Run{
		ID:       id,
		messages: make(chan contracts.Message, buffer),
		done:     make(chan struct{}),
	}
}

func (this *Run) Messages() <-chan contracts.Message { return this.messages }
func (this *Run) Done() <-chan struct{}              { return this.done }
func (this *Run) State() RunState                    { return RunState(this.state.Load()) }

// Result blocks until the run has completed.
func (this *Run) Result() Result {
	<-this.done
	return this.result
}

func (this *Run) emit(text string, isStatus bool) {
	this.messages <- contracts.Message{Text: text, IsStatus: isStatus}
}

func (this *Run) status(text string) {
	this.emit(text, true)
}

func (this *Run) info(text string) {
	this.emit(text, false)
}

// Observe relays the run's messages to observer in order, then signals
// completion exactly once and returns the outcome.
func Observe(run *Run, observer contracts.Observer) Result {
	for message := range run.Messages() {
		observer.OnMessage(message.Text, message.IsStatus)
	}
	<-run.Done()
	observer.OnCompleted()
	return run.result
}
