package protocol

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/outbreakgames/obx/internal/game"
)

func TestClassChoicesRoundTrip(t *testing.T) {
	message := json.RawMessage(`{"choices":["MEDIC","MARKSMAN","BUILDER"],"numToPick":3,"maxPerSameClass":2}`)

	cc, err := DecodeClassChoices(message)
	if err != nil {
		t.Fatalf("DecodeClassChoices: %v", err)
	}
	if cc.NumToPick != 3 || cc.MaxPerSameClass != 2 {
		t.Errorf("constraints = %d/%d, want 3/2", cc.NumToPick, cc.MaxPerSameClass)
	}
	if len(cc.Choices) != 3 || cc.Choices[0] != game.ClassMedic {
		t.Errorf("choices = %v", cc.Choices)
	}

	selection := map[game.CharacterClass]int{
		game.ClassMedic:    1,
		game.ClassMarksman: 2,
	}
	out, err := EncodeClassSelection(selection)
	if err != nil {
		t.Fatalf("EncodeClassSelection: %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	want := map[string]int{"MEDIC": 1, "MARKSMAN": 2}
	if !reflect.DeepEqual(decoded, want) {
		t.Errorf("response = %v, want %v", decoded, want)
	}
}

func TestDecodeClassChoicesMissing(t *testing.T) {
	_, err := DecodeClassChoices(json.RawMessage(`{"numToPick":2}`))
	if !errors.Is(err, ErrMalformedPayload) {
		t.Fatalf("err = %v, want ErrMalformedPayload", err)
	}
}

func TestDecodeMoveChoices(t *testing.T) {
	message := json.RawMessage(`{
		"possibleMoves": {
			"c1": [
				{"executingCharacterId":"c1","destination":{"x":1,"y":2}},
				{"executingCharacterId":"c1","destination":{"x":2,"y":2}}
			],
			"c2": []
		}
	}`)

	choices, err := DecodeMoveChoices(message)
	if err != nil {
		t.Fatalf("DecodeMoveChoices: %v", err)
	}
	if len(choices["c1"]) != 2 {
		t.Fatalf("c1 candidates = %d, want 2", len(choices["c1"]))
	}
	if choices["c1"][1].Destination != (game.Position{X: 2, Y: 2}) {
		t.Errorf("c1[1].destination = %v", choices["c1"][1].Destination)
	}
}

func TestDecodeChoicesMissingKey(t *testing.T) {
	payload := json.RawMessage(`{"turn":3}`)

	if _, err := DecodeMoveChoices(payload); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("moves err = %v, want ErrMalformedPayload", err)
	}
	if _, err := DecodeAttackChoices(payload); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("attacks err = %v, want ErrMalformedPayload", err)
	}
	if _, err := DecodeAbilityChoices(payload); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("abilities err = %v, want ErrMalformedPayload", err)
	}
}

func TestEncodeActionsPreservesOrder(t *testing.T) {
	chosen := []game.AttackAction{
		{ExecutingCharacterID: "c3", AttackType: game.AttackCharacter, AttackingID: "z9"},
		{ExecutingCharacterID: "c1", AttackType: game.AttackTerrain, AttackingID: "t2"},
		{ExecutingCharacterID: "c2", AttackType: game.AttackCharacter, AttackingID: "z1"},
	}

	out, err := EncodeAttacks(chosen)
	if err != nil {
		t.Fatalf("EncodeAttacks: %v", err)
	}

	var decoded []game.AttackAction
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded, chosen) {
		t.Errorf("order not preserved:\ngot  %v\nwant %v", decoded, chosen)
	}
}

func TestEncodeActionsEmpty(t *testing.T) {
	// An empty decision must encode as [], never as the null sentinel.
	out, err := EncodeMoves(nil)
	if err != nil {
		t.Fatalf("EncodeMoves: %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("empty response = %s, want []", out)
	}
}

func TestDecodeFinishAndSummary(t *testing.T) {
	message := json.RawMessage(`{
		"scores": {"humans":3,"zombies":5},
		"stats": {"humansLeft":1,"zombiesLeft":2,"turns":10},
		"errors": {"humanErrors":["turn 4: bad move"],"zombieErrors":[]}
	}`)

	report, err := DecodeFinish(message)
	if err != nil {
		t.Fatalf("DecodeFinish: %v", err)
	}

	summary := report.Summary(SideHuman)
	for _, want := range []string{"3-5", "turn 10", "1 humans and 2 zombies", "1 errors", "turn 4: bad move", "You were the humans"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	zombieSummary := report.Summary(SideZombie)
	if !strings.Contains(zombieSummary, "no errors") {
		t.Errorf("zombie summary should report no errors:\n%s", zombieSummary)
	}
	if !strings.Contains(zombieSummary, "You were the zombies") {
		t.Errorf("zombie summary wrong side:\n%s", zombieSummary)
	}
}
