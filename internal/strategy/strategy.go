package strategy

import (
	"context"

	"github.com/outbreakgames/obx/internal/game"
	"github.com/outbreakgames/obx/internal/protocol"
)

// Strategy is the decision-making contract a bot plugs into the runner.
// Each method answers one phase of the turn protocol. Returning nil means
// "no decision" and is a contract violation the runner turns into a
// sentinel response for that turn; an empty (non-nil) slice is a valid
// "do nothing" decision.
//
// The ctx carries the per-turn deadline when the session configures one;
// long-running strategies should respect it.
type Strategy interface {
	// DecideClasses picks numToPick classes from the offered choices, at
	// most maxPerSameClass repeats of any one class. The returned counts
	// are not validated client-side; the server enforces the constraints.
	DecideClasses(ctx context.Context, choices []game.CharacterClass, numToPick, maxPerSameClass int) map[game.CharacterClass]int

	// DecideMoves chooses moves from the offered per-character candidates.
	// The returned order is the execution priority the server applies.
	DecideMoves(ctx context.Context, possible map[string][]game.MoveAction, state *game.GameState) []game.MoveAction

	// DecideAttacks chooses attacks from the offered per-character candidates.
	DecideAttacks(ctx context.Context, possible map[string][]game.AttackAction, state *game.GameState) []game.AttackAction

	// DecideAbilities chooses ability uses from the offered per-character candidates.
	DecideAbilities(ctx context.Context, possible map[string][]game.AbilityAction, state *game.GameState) []game.AbilityAction
}

// Provider resolves the strategy for the side a session plays. It is
// called once per envelope; implementations should be cheap.
type Provider func(side protocol.Side) Strategy

// Default returns the baseline strategy for each side.
func Default(side protocol.Side) Strategy {
	if side.IsZombie() {
		return &ZombieStrategy{}
	}
	return &HumanStrategy{}
}
