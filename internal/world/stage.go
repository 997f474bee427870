package world

// Stage represents the progress of a generation run.
type Stage int

const (
	// StageEmpty is a freshly created, all-void grid.
	StageEmpty Stage = iota
	// StagePlaced means rooms have been stamped onto the grid.
	StagePlaced
	// StageGraphed means the room connections have been chosen.
	StageGraphed
	// StageRouted means every connection has a carved corridor.
	StageRouted
	// StageDone means the layout has been handed to the caller.
	StageDone
)

// String returns a human-readable stage name.
func (s Stage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StagePlaced:
		return "placed"
	case StageGraphed:
		return "graphed"
	case StageRouted:
		return "routed"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}
