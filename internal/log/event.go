package log

// EventType enumerates the observable events of a runner session.
type EventType int

const (
	EventConnected EventType = iota
	EventEnvelope
	EventDecision
	EventTurnError
	EventFinish
)

func (e EventType) String() string {
	switch e {
	case EventConnected:
		return "Connected"
	case EventEnvelope:
		return "Envelope"
	case EventDecision:
		return "Decision"
	case EventTurnError:
		return "TurnError"
	case EventFinish:
		return "Finish"
	default:
		return "Unknown"
	}
}

// SessionEvent represents a single observable event in a session.
type SessionEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // server turn number (0 before the first envelope)
	Phase   string    // phase tag of the envelope being handled, if any
	Type    EventType // event type
	Details string    // human-readable detail string
}
