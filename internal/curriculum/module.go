package curriculum

// Module is a single lesson in the learning lab.
type Module struct {
	ID            string   `yaml:"id" json:"id"`
	Order         int      `yaml:"order" json:"order"`
	Title         string   `yaml:"title" json:"title"`
	Icon          string   `yaml:"icon" json:"icon"`
	Summary       string   `yaml:"summary" json:"summary"`
	Prerequisites []string `yaml:"prerequisites" json:"prerequisites"`
}

// State represents a module's state relative to the learner.
type State int

const (
	StateLocked    State = iota // One or more prerequisites not yet completed
	StateUnlocked                // All prerequisites completed; module not yet completed
	StateCompleted               // Learner finished the module
)

// Icon returns the display icon for a module state.
func (s State) Icon() string {
	switch s {
	case StateLocked:
		return "🔒"
	case StateUnlocked:
		return "🔓"
	case StateCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a module state.
func (s State) Label() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateUnlocked:
		return "Unlocked"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// String implements fmt.Stringer; it is also the wire form used by the API.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateUnlocked:
		return "unlocked"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name so JSON responses stay readable.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
