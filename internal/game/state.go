package game

import (
	"encoding/json"
	"fmt"
)

// CharacterState is one character's view in a turn snapshot.
type CharacterState struct {
	ID        string         `json:"id"`
	Position  Position       `json:"position"`
	IsZombie  bool           `json:"isZombie"`
	IsStunned bool           `json:"isStunned"`
	Health    int            `json:"health"`
	Class     CharacterClass `json:"class"`
}

// TerrainState is one terrain feature's view in a turn snapshot.
type TerrainState struct {
	ID           string   `json:"id"`
	Position     Position `json:"position"`
	Health       int      `json:"health"`
	Destructible bool     `json:"destructible"`
}

// GameState is the board snapshot the engine attaches to every MOVE,
// ATTACK and ABILITY message. It is rebuilt from scratch each turn and
// discarded after the turn's response is sent; nothing caches it.
type GameState struct {
	Turn            int                       `json:"turn"`
	CharacterStates map[string]CharacterState `json:"characterStates"`
	TerrainStates   map[string]TerrainState   `json:"terrainStates"`
}

// DecodeState rebuilds a GameState from a turn's message payload.
func DecodeState(message json.RawMessage) (*GameState, error) {
	var s GameState
	if err := json.Unmarshal(message, &s); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	if s.CharacterStates == nil {
		return nil, fmt.Errorf("decode game state: missing characterStates")
	}
	return &s, nil
}

// Characters returns the characters on one side of the board.
func (s *GameState) Characters(zombie bool) []CharacterState {
	var out []CharacterState
	for _, c := range s.CharacterStates {
		if c.IsZombie == zombie {
			out = append(out, c)
		}
	}
	return out
}

// Distance is the Chebyshev distance between two positions, the metric
// the engine uses for movement and attack ranges.
func Distance(a, b Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
