package contracts

// Message is one line of progress emitted by an analysis run.
type Message struct {
	Text     string
	IsStatus bool
}

type Observer interface {
	OnMessage(text string, isStatus bool)
	OnCompleted()
}
