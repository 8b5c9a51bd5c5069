package protocol

// Phase tags the sub-protocol a server envelope belongs to. The phase
// alone determines the payload shape and the expected response shape.
type Phase string

const (
	PhaseChooseClasses Phase = "CHOOSE_CLASSES"
	PhaseMove          Phase = "MOVE"
	PhaseAttack        Phase = "ATTACK"
	PhaseAbility       Phase = "ABILITY"
	PhaseFinish        Phase = "FINISH"
)

// Known reports whether the phase is one of the five the protocol defines.
func (p Phase) Known() bool {
	switch p {
	case PhaseChooseClasses, PhaseMove, PhaseAttack, PhaseAbility, PhaseFinish:
		return true
	}
	return false
}

// Side is the faction a client session plays.
type Side string

const (
	SideHuman  Side = "HUMAN"
	SideZombie Side = "ZOMBIE"
)

// IsZombie reports whether the side is the zombie faction.
func (s Side) IsZombie() bool { return s == SideZombie }

// Sentinel is the universal "no decision" response. It is written whenever
// dispatch for a non-FINISH turn fails for any reason; the server applies
// its own forfeit semantics for that turn.
var Sentinel = []byte("null")
