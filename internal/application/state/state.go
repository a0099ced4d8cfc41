// Package state holds the small enums shared by the scene stack and the
// transition orchestrator.
package state

// ChangeKind is the kind of stack mutation waiting to be committed
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangeSwitch
	ChangePush
	ChangePop
)

// String returns the string representation of the change kind
func (k ChangeKind) String() string {
	switch k {
	case ChangeNone:
		return "None"
	case ChangeSwitch:
		return "Switch"
	case ChangePush:
		return "Push"
	case ChangePop:
		return "Pop"
	default:
		return "Unknown"
	}
}

// Phase is the current phase of the transition orchestrator.
//
// Covering, Covered and Uncovering belong to the default curtain;
// CustomExit and CustomEnter are driven by a scene's own hooks.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCovering
	PhaseCovered
	PhaseUncovering
	PhaseCustomExit
	PhaseCustomEnter
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseCovering:
		return "Covering"
	case PhaseCovered:
		return "Covered"
	case PhaseUncovering:
		return "Uncovering"
	case PhaseCustomExit:
		return "CustomExit"
	case PhaseCustomEnter:
		return "CustomEnter"
	default:
		return "Unknown"
	}
}

// Curtain reports whether the phase belongs to the default curtain transition
func (p Phase) Curtain() bool {
	return p == PhaseCovering || p == PhaseCovered || p == PhaseUncovering
}

// Custom reports whether the phase is driven by a scene hook
func (p Phase) Custom() bool {
	return p == PhaseCustomExit || p == PhaseCustomEnter
}

// Trigger selects which of a scene's transition hooks is driven
type Trigger int

const (
	TriggerExit Trigger = iota
	TriggerEnter
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	switch t {
	case TriggerExit:
		return "Exit"
	case TriggerEnter:
		return "Enter"
	default:
		return "Unknown"
	}
}
