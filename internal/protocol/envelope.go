package protocol

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON string

var envelopeSchema = jsonschema.MustCompileString("envelope.schema.json", envelopeSchemaJSON)

// Envelope is the outer wire message the server sends every turn.
// Responses are phase-specific bare values; there is no envelope encoder.
type Envelope struct {
	Side    Side            `json:"side"`
	Phase   Phase           `json:"phase"`
	Turn    int             `json:"turn"`
	Message json.RawMessage `json:"message"`
}

// DecodeEnvelope parses raw transport bytes into an Envelope. The bytes
// are validated against the embedded envelope schema first, so missing
// required fields surface as ErrMalformedEnvelope rather than as zero
// values downstream. The phase tag is not checked here: an unknown phase
// is a dispatch-level condition, not a malformed envelope.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if err := envelopeSchema.Validate(doc); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	return env, nil
}
