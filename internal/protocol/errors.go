package protocol

import "errors"

// Turn-level error kinds. All of them are recovered at the dispatch
// iteration boundary and answered with Sentinel; none ends the session.
var (
	// ErrMalformedEnvelope: transport bytes do not parse into a valid envelope.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrUnknownPhase: the envelope's phase tag matches none of the five
	// known values.
	ErrUnknownPhase = errors.New("unknown phase")

	// ErrMalformedPayload: the envelope parsed but its message payload does
	// not have the shape the phase requires.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrStrategyNoDecision: the strategy returned nil where a decision is
	// required.
	ErrStrategyNoDecision = errors.New("strategy returned no decision")
)
