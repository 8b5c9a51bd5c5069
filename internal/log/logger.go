package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging session events.
type EventLogger interface {
	Log(event SessionEvent)
	Events() []SessionEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []SessionEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event SessionEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []SessionEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []SessionEvent {
	var result []SessionEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() SessionEvent {
	if len(l.events) == 0 {
		return SessionEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event SessionEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e SessionEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 16 chars for alignment
	for len(phase) < 16 {
		phase += " "
	}

	return fmt.Sprintf("T%-3d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []SessionEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewConnectedEvent(addr string) SessionEvent {
	return SessionEvent{
		Type:    EventConnected,
		Details: fmt.Sprintf("Connected to %s", addr),
	}
}

func NewEnvelopeEvent(turn int, phase string) SessionEvent {
	return SessionEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventEnvelope,
		Details: fmt.Sprintf("Getting your bot's response to %s phase...", phase),
	}
}

func NewDecisionEvent(turn int, phase string) SessionEvent {
	return SessionEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventDecision,
		Details: fmt.Sprintf("Sent response to %s phase to server", phase),
	}
}

func NewTurnErrorEvent(turn int, phase string, err error) SessionEvent {
	return SessionEvent{
		Turn:    turn,
		Phase:   phase,
		Type:    EventTurnError,
		Details: fmt.Sprintf("Something went wrong running your bot: %v", err),
	}
}

func NewFinishEvent(turn int, summary string) SessionEvent {
	return SessionEvent{
		Turn:    turn,
		Phase:   "FINISH",
		Type:    EventFinish,
		Details: summary,
	}
}
