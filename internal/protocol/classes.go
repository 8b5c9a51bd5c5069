package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/outbreakgames/obx/internal/game"
)

// ClassChoices is the decoded CHOOSE_CLASSES payload: the classes on
// offer plus the pick constraints the strategy must honor.
type ClassChoices struct {
	Choices         []game.CharacterClass `json:"choices"`
	NumToPick       int                   `json:"numToPick"`
	MaxPerSameClass int                   `json:"maxPerSameClass"`
}

// DecodeClassChoices parses a CHOOSE_CLASSES message payload.
func DecodeClassChoices(message json.RawMessage) (ClassChoices, error) {
	var cc ClassChoices
	if err := json.Unmarshal(message, &cc); err != nil {
		return ClassChoices{}, fmt.Errorf("%w: choose classes: %v", ErrMalformedPayload, err)
	}
	if cc.Choices == nil {
		return ClassChoices{}, fmt.Errorf("%w: choose classes: missing choices", ErrMalformedPayload)
	}
	return cc, nil
}

// EncodeClassSelection encodes a class→count selection as the wire
// response object, e.g. {"MEDIC":1,"MARKSMAN":2}. Counts are not checked
// against the offer constraints; that contract is the strategy's, and the
// server validates on its side.
func EncodeClassSelection(selection map[game.CharacterClass]int) ([]byte, error) {
	out := make(map[string]int, len(selection))
	for class, n := range selection {
		out[string(class)] = n
	}
	return json.Marshal(out)
}
