package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/outbreakgames/obx/internal/game"
)

// The MOVE, ATTACK and ABILITY payloads all carry one choice map: entity
// id → ordered candidate actions of that kind. The response is a flat
// ordered array of chosen actions; the order the strategy returns is the
// priority order the server executes, so encoding never reorders.

func decodeChoiceMap[A any](message json.RawMessage, key string) (map[string][]A, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(message, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, key, err)
	}
	raw, ok := payload[key]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedPayload, key)
	}
	var choices map[string][]A
	if err := json.Unmarshal(raw, &choices); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, key, err)
	}
	return choices, nil
}

// DecodeMoveChoices parses a MOVE payload's possibleMoves choice map.
func DecodeMoveChoices(message json.RawMessage) (map[string][]game.MoveAction, error) {
	return decodeChoiceMap[game.MoveAction](message, "possibleMoves")
}

// DecodeAttackChoices parses an ATTACK payload's possibleAttacks choice map.
func DecodeAttackChoices(message json.RawMessage) (map[string][]game.AttackAction, error) {
	return decodeChoiceMap[game.AttackAction](message, "possibleAttacks")
}

// DecodeAbilityChoices parses an ABILITY payload's possibleAbilities choice map.
func DecodeAbilityChoices(message json.RawMessage) (map[string][]game.AbilityAction, error) {
	return decodeChoiceMap[game.AbilityAction](message, "possibleAbilities")
}

func encodeActions[A any](chosen []A) ([]byte, error) {
	if chosen == nil {
		// A nil slice would marshal to JSON null, which is the failure
		// sentinel. An empty decision is a valid "do nothing" response.
		chosen = []A{}
	}
	return json.Marshal(chosen)
}

// EncodeMoves encodes chosen moves as the MOVE response array.
func EncodeMoves(chosen []game.MoveAction) ([]byte, error) { return encodeActions(chosen) }

// EncodeAttacks encodes chosen attacks as the ATTACK response array.
func EncodeAttacks(chosen []game.AttackAction) ([]byte, error) { return encodeActions(chosen) }

// EncodeAbilities encodes chosen abilities as the ABILITY response array.
func EncodeAbilities(chosen []game.AbilityAction) ([]byte, error) { return encodeActions(chosen) }
