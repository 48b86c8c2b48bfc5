package contracts

// Snapshot is the ordered collection of options surviving an analysis run.
type Snapshot struct {
	Options []*Option
}

func (this *Snapshot) Append(options ...*Option) {
	this.Options = append(this.Options, options...)
}
