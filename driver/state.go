package driver

// State is the lifecycle phase of a Session.
type State int

const (
	Initializing State = iota
	Running
	Draining
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
