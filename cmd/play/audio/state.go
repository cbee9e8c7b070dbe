package audio

// State represents the current playback state of the engine.
type State string

const (
	StateStopped State = "stopped"
	StatePlaying State = "playing"
	StatePaused  State = "paused"
)

// Status is a read-only snapshot of the engine. Position and Duration are
// whole seconds; Duration is 0 when unknown, CurrentFile is empty when
// nothing is loaded.
type Status struct {
	State       State
	Position    uint64
	Duration    uint64
	Volume      float64
	Speed       float64
	CurrentFile string
}
