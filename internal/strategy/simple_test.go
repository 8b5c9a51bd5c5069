package strategy

import (
	"context"
	"reflect"
	"testing"

	"github.com/outbreakgames/obx/internal/game"
	"github.com/outbreakgames/obx/internal/protocol"
)

func TestDefaultPicksBySide(t *testing.T) {
	if _, ok := Default(protocol.SideHuman).(*HumanStrategy); !ok {
		t.Error("human side should get HumanStrategy")
	}
	if _, ok := Default(protocol.SideZombie).(*ZombieStrategy); !ok {
		t.Error("zombie side should get ZombieStrategy")
	}
}

func TestSpreadClassesHonorsConstraints(t *testing.T) {
	choices := []game.CharacterClass{game.ClassMedic, game.ClassMarksman, game.ClassBuilder}

	picks := spreadClasses(choices, 5, 2)

	total := 0
	for class, n := range picks {
		if n > 2 {
			t.Errorf("class %s picked %d times, cap is 2", class, n)
		}
		total += n
	}
	if total != 5 {
		t.Errorf("total picks = %d, want 5", total)
	}
}

func TestSpreadClassesCapBound(t *testing.T) {
	// Asking for more picks than the caps allow stops at the cap.
	picks := spreadClasses([]game.CharacterClass{game.ClassMedic}, 5, 2)
	if picks[game.ClassMedic] != 2 {
		t.Errorf("picks = %v, want MEDIC=2", picks)
	}
}

func testState() *game.GameState {
	return &game.GameState{
		Turn: 1,
		CharacterStates: map[string]game.CharacterState{
			"h1": {ID: "h1", Position: game.Position{X: 0, Y: 0}, Health: 4, Class: game.ClassNormal},
			"h2": {ID: "h2", Position: game.Position{X: 5, Y: 5}, Health: 1, Class: game.ClassMedic},
			"z1": {ID: "z1", Position: game.Position{X: 8, Y: 8}, IsZombie: true, Health: 1, Class: game.ClassZombie},
			"z2": {ID: "z2", Position: game.Position{X: 3, Y: 3}, IsZombie: true, Health: 2, Class: game.ClassZombie},
		},
	}
}

func TestHumanMovesAwayFromZombies(t *testing.T) {
	possible := map[string][]game.MoveAction{
		"h1": {
			{ExecutingCharacterID: "h1", Destination: game.Position{X: 2, Y: 2}}, // toward z2
			{ExecutingCharacterID: "h1", Destination: game.Position{X: 0, Y: 0}}, // stay put
		},
	}

	moves := (&HumanStrategy{}).DecideMoves(context.Background(), possible, testState())

	if len(moves) != 1 {
		t.Fatalf("moves = %d, want 1", len(moves))
	}
	if moves[0].Destination != (game.Position{X: 0, Y: 0}) {
		t.Errorf("human moved to %v, want the farther tile", moves[0].Destination)
	}
}

func TestZombieMovesTowardHumans(t *testing.T) {
	possible := map[string][]game.MoveAction{
		"z2": {
			{ExecutingCharacterID: "z2", Destination: game.Position{X: 4, Y: 4}},
			{ExecutingCharacterID: "z2", Destination: game.Position{X: 2, Y: 2}},
		},
	}

	moves := (&ZombieStrategy{}).DecideMoves(context.Background(), possible, testState())

	if len(moves) != 1 {
		t.Fatalf("moves = %d, want 1", len(moves))
	}
	// (4,4) is distance 1 from h2 at (5,5); (2,2) is distance 2 from h1.
	if moves[0].Destination != (game.Position{X: 4, Y: 4}) {
		t.Errorf("zombie moved to %v, want the closer tile", moves[0].Destination)
	}
}

func TestAttackWeakestTarget(t *testing.T) {
	possible := map[string][]game.AttackAction{
		"h1": {
			{ExecutingCharacterID: "h1", AttackType: game.AttackCharacter, AttackingID: "z2"}, // health 2
			{ExecutingCharacterID: "h1", AttackType: game.AttackCharacter, AttackingID: "z1"}, // health 1
		},
	}

	attacks := (&HumanStrategy{}).DecideAttacks(context.Background(), possible, testState())

	if len(attacks) != 1 {
		t.Fatalf("attacks = %d, want 1", len(attacks))
	}
	if attacks[0].AttackingID != "z1" {
		t.Errorf("attacked %s, want the weakest target z1", attacks[0].AttackingID)
	}
}

func TestMedicHealsMostWounded(t *testing.T) {
	possible := map[string][]game.AbilityAction{
		"h2": {
			{ExecutingCharacterID: "h2", AbilityType: game.AbilityHeal, CharacterIDTarget: "h1"}, // health 4
			{ExecutingCharacterID: "h2", AbilityType: game.AbilityHeal, CharacterIDTarget: "h2"}, // health 1
		},
	}

	abilities := (&HumanStrategy{}).DecideAbilities(context.Background(), possible, testState())

	if len(abilities) != 1 {
		t.Fatalf("abilities = %d, want 1", len(abilities))
	}
	if abilities[0].CharacterIDTarget != "h2" {
		t.Errorf("healed %s, want the most wounded h2", abilities[0].CharacterIDTarget)
	}
}

func TestDecisionsAreNeverNil(t *testing.T) {
	// The runner treats nil as a contract violation; the baselines must
	// return empty, not nil, when there is nothing to do.
	ctx := context.Background()
	state := testState()
	for _, s := range []Strategy{&HumanStrategy{}, &ZombieStrategy{}} {
		if s.DecideMoves(ctx, map[string][]game.MoveAction{}, state) == nil {
			t.Errorf("%T.DecideMoves returned nil", s)
		}
		if s.DecideAttacks(ctx, map[string][]game.AttackAction{}, state) == nil {
			t.Errorf("%T.DecideAttacks returned nil", s)
		}
		if s.DecideAbilities(ctx, map[string][]game.AbilityAction{}, state) == nil {
			t.Errorf("%T.DecideAbilities returned nil", s)
		}
		if s.DecideClasses(ctx, nil, 0, 0) == nil {
			t.Errorf("%T.DecideClasses returned nil", s)
		}
	}
}

func TestMovesDeterministic(t *testing.T) {
	possible := map[string][]game.MoveAction{
		"h1": {{ExecutingCharacterID: "h1", Destination: game.Position{X: 0, Y: 1}}},
		"h2": {{ExecutingCharacterID: "h2", Destination: game.Position{X: 5, Y: 4}}},
	}

	s := &HumanStrategy{}
	first := s.DecideMoves(context.Background(), possible, testState())
	for i := 0; i < 10; i++ {
		again := s.DecideMoves(context.Background(), possible, testState())
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed:\ngot  %v\nwant %v", i, again, first)
		}
	}
	if len(first) != 2 || first[0].ExecutingCharacterID != "h1" {
		t.Errorf("moves not in id order: %v", first)
	}
}
