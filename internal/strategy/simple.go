package strategy

import (
	"context"
	"sort"

	"github.com/outbreakgames/obx/internal/game"
)

// Baseline strategies. They are intentionally simple and fully
// deterministic for a given snapshot: characters are handled in id order
// and ties break on the earliest candidate.

// HumanStrategy keeps its distance from zombies, shoots the weakest
// zombie in range, and heals the most wounded ally.
type HumanStrategy struct{}

func (s *HumanStrategy) DecideClasses(ctx context.Context, choices []game.CharacterClass, numToPick, maxPerSameClass int) map[game.CharacterClass]int {
	return spreadClasses(choices, numToPick, maxPerSameClass)
}

func (s *HumanStrategy) DecideMoves(ctx context.Context, possible map[string][]game.MoveAction, state *game.GameState) []game.MoveAction {
	moves := []game.MoveAction{}
	for _, id := range sortedIDs(possible) {
		candidates := possible[id]
		if len(candidates) == 0 {
			continue
		}
		threats := state.Characters(true)
		best := candidates[0]
		bestDist := nearestDistance(best.Destination, threats)
		for _, c := range candidates[1:] {
			if d := nearestDistance(c.Destination, threats); d > bestDist {
				best, bestDist = c, d
			}
		}
		moves = append(moves, best)
	}
	return moves
}

func (s *HumanStrategy) DecideAttacks(ctx context.Context, possible map[string][]game.AttackAction, state *game.GameState) []game.AttackAction {
	return attackWeakest(possible, state)
}

func (s *HumanStrategy) DecideAbilities(ctx context.Context, possible map[string][]game.AbilityAction, state *game.GameState) []game.AbilityAction {
	abilities := []game.AbilityAction{}
	for _, id := range sortedIDs(possible) {
		candidates := possible[id]
		var best *game.AbilityAction
		bestHealth := 0
		for i, c := range candidates {
			if c.AbilityType != game.AbilityHeal {
				continue
			}
			target, ok := state.CharacterStates[c.CharacterIDTarget]
			if !ok {
				continue
			}
			if best == nil || target.Health < bestHealth {
				best = &candidates[i]
				bestHealth = target.Health
			}
		}
		if best == nil && len(candidates) > 0 {
			best = &candidates[0]
		}
		if best != nil {
			abilities = append(abilities, *best)
		}
	}
	return abilities
}

// ZombieStrategy closes in on the nearest human and bites whatever is
// weakest.
type ZombieStrategy struct{}

func (s *ZombieStrategy) DecideClasses(ctx context.Context, choices []game.CharacterClass, numToPick, maxPerSameClass int) map[game.CharacterClass]int {
	// Zombies are offered a single class; the spread handles that fine.
	return spreadClasses(choices, numToPick, maxPerSameClass)
}

func (s *ZombieStrategy) DecideMoves(ctx context.Context, possible map[string][]game.MoveAction, state *game.GameState) []game.MoveAction {
	moves := []game.MoveAction{}
	for _, id := range sortedIDs(possible) {
		candidates := possible[id]
		if len(candidates) == 0 {
			continue
		}
		prey := state.Characters(false)
		best := candidates[0]
		bestDist := nearestDistance(best.Destination, prey)
		for _, c := range candidates[1:] {
			if d := nearestDistance(c.Destination, prey); d < bestDist {
				best, bestDist = c, d
			}
		}
		moves = append(moves, best)
	}
	return moves
}

func (s *ZombieStrategy) DecideAttacks(ctx context.Context, possible map[string][]game.AttackAction, state *game.GameState) []game.AttackAction {
	return attackWeakest(possible, state)
}

func (s *ZombieStrategy) DecideAbilities(ctx context.Context, possible map[string][]game.AbilityAction, state *game.GameState) []game.AbilityAction {
	// Zombies have no abilities; an empty decision is still a decision.
	return []game.AbilityAction{}
}

// --- shared helpers ---

// spreadClasses fills numToPick slots cycling through the offered classes
// in order, never exceeding maxPerSameClass per class.
func spreadClasses(choices []game.CharacterClass, numToPick, maxPerSameClass int) map[game.CharacterClass]int {
	picks := make(map[game.CharacterClass]int)
	if len(choices) == 0 || numToPick <= 0 {
		return picks
	}
	remaining := numToPick
	for remaining > 0 {
		progressed := false
		for _, class := range choices {
			if remaining == 0 {
				break
			}
			if maxPerSameClass > 0 && picks[class] >= maxPerSameClass {
				continue
			}
			picks[class]++
			remaining--
			progressed = true
		}
		if !progressed {
			break // every class is at its cap
		}
	}
	return picks
}

// attackWeakest picks, per attacker, the character-target candidate whose
// target has the least health, falling back to the first candidate.
func attackWeakest(possible map[string][]game.AttackAction, state *game.GameState) []game.AttackAction {
	attacks := []game.AttackAction{}
	for _, id := range sortedIDs(possible) {
		candidates := possible[id]
		var best *game.AttackAction
		bestHealth := 0
		for i, c := range candidates {
			if c.AttackType != game.AttackCharacter {
				continue
			}
			target, ok := state.CharacterStates[c.AttackingID]
			if !ok {
				continue
			}
			if best == nil || target.Health < bestHealth {
				best = &candidates[i]
				bestHealth = target.Health
			}
		}
		if best == nil && len(candidates) > 0 {
			best = &candidates[0]
		}
		if best != nil {
			attacks = append(attacks, *best)
		}
	}
	return attacks
}

func nearestDistance(from game.Position, others []game.CharacterState) int {
	const far = 1 << 30
	best := far
	for _, o := range others {
		if d := game.Distance(from, o.Position); d < best {
			best = d
		}
	}
	return best
}

func sortedIDs[A any](m map[string][]A) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
