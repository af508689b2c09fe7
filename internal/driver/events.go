package driver

// Stage identifies one step of the snapshot analysis pipeline.
type Stage uint8

const (
	StageLoad Stage = iota
	StageAnalyze
	StageReport
)

// Status reports how far a file has progressed through a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event describes one progress update during directory analysis. Events with
// an empty File apply to the whole run.
type Event struct {
	File        string
	Stage       Stage
	Status      Status
	Diagnostics int
	FromCache   bool
}

// Observer receives progress events. A nil Observer is a no-op.
type Observer func(Event)

func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
