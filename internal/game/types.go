package game

// Wire types shared by the protocol codecs and strategies. Field names
// match the engine's JSON exactly; these structs are both the typed and
// the wire representation.

// Position is a board coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CharacterClass identifies a selectable character class.
type CharacterClass string

const (
	ClassNormal        CharacterClass = "NORMAL"
	ClassZombie        CharacterClass = "ZOMBIE"
	ClassMarksman      CharacterClass = "MARKSMAN"
	ClassTraceur       CharacterClass = "TRACEUR"
	ClassMedic         CharacterClass = "MEDIC"
	ClassBuilder       CharacterClass = "BUILDER"
	ClassDemolitionist CharacterClass = "DEMOLITIONIST"
)

// AttackType says what kind of thing an attack targets.
type AttackType string

const (
	AttackCharacter AttackType = "CHARACTER"
	AttackTerrain   AttackType = "TERRAIN"
)

// AbilityType identifies a class ability.
type AbilityType string

const (
	AbilityHeal           AbilityType = "HEAL"
	AbilityBuildBarricade AbilityType = "BUILD_BARRICADE"
)

// MoveAction moves one character to a destination tile.
type MoveAction struct {
	ExecutingCharacterID string   `json:"executingCharacterId"`
	Destination          Position `json:"destination"`
}

// AttackAction attacks a character or a terrain feature by id.
type AttackAction struct {
	ExecutingCharacterID string     `json:"executingCharacterId"`
	AttackType           AttackType `json:"attackType"`
	AttackingID          string     `json:"attackingId"`
}

// AbilityAction uses a class ability. CharacterIDTarget is set for HEAL,
// PositionalTarget for BUILD_BARRICADE.
type AbilityAction struct {
	ExecutingCharacterID string      `json:"executingCharacterId"`
	AbilityType          AbilityType `json:"abilityType"`
	CharacterIDTarget    string      `json:"characterIdTarget,omitempty"`
	PositionalTarget     Position    `json:"positionalTarget"`
}
