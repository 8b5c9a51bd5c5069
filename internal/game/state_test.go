package game

import (
	"encoding/json"
	"testing"
)

func TestDecodeState(t *testing.T) {
	message := json.RawMessage(`{
		"turn": 12,
		"characterStates": {
			"h1": {"id":"h1","position":{"x":0,"y":0},"isZombie":false,"health":3,"class":"MEDIC"},
			"z1": {"id":"z1","position":{"x":4,"y":3},"isZombie":true,"isStunned":true,"health":1,"class":"ZOMBIE"}
		},
		"terrainStates": {
			"t1": {"id":"t1","position":{"x":2,"y":2},"health":2,"destructible":true}
		}
	}`)

	s, err := DecodeState(message)
	if err != nil {
		t.Fatalf("DecodeState: %v", err)
	}
	if s.Turn != 12 {
		t.Errorf("turn = %d, want 12", s.Turn)
	}
	if len(s.CharacterStates) != 2 || len(s.TerrainStates) != 1 {
		t.Fatalf("state sizes = %d/%d", len(s.CharacterStates), len(s.TerrainStates))
	}
	if !s.CharacterStates["z1"].IsStunned {
		t.Error("z1 should be stunned")
	}

	humans := s.Characters(false)
	if len(humans) != 1 || humans[0].ID != "h1" {
		t.Errorf("humans = %v", humans)
	}
}

func TestDecodeStateMissingCharacters(t *testing.T) {
	if _, err := DecodeState(json.RawMessage(`{"turn":1}`)); err == nil {
		t.Fatal("expected error for missing characterStates")
	}
	if _, err := DecodeState(json.RawMessage(`not json`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b Position
		want int
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 1}, 3},
		{Position{2, 5}, Position{0, 1}, 4},
		{Position{-1, -1}, Position{1, 1}, 2},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
