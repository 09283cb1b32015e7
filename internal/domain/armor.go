package domain

// Level is an armor upgrade tier
type Level int

// Level bounds shared by every armor piece
const (
	LevelMin Level = 0
	LevelMax Level = 4
)

// Valid reports whether the level lies within [LevelMin, LevelMax]
func (l Level) Valid() bool {
	return l >= LevelMin && l <= LevelMax
}

// Slot is the body slot an armor piece occupies
type Slot string

// Armor slots
const (
	SlotHead  Slot = "head"
	SlotChest Slot = "chest"
	SlotLegs  Slot = "legs"
)

// Valid reports whether the slot is one of the known slots
func (s Slot) Valid() bool {
	switch s {
	case SlotHead, SlotChest, SlotLegs:
		return true
	}
	return false
}

// Material is a crafting resource consumed by upgrade steps
type Material struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ArmorPiece is an equippable item with a discrete upgrade level
type ArmorPiece struct {
	ID          string `json:"id" yaml:"id"`
	Set         string `json:"set" yaml:"set"`
	Name        string `json:"name" yaml:"name"`
	MaxLevel    Level  `json:"maxLevel" yaml:"maxLevel"`
	Slot        Slot   `json:"slot" yaml:"slot"`
	Icon        string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Location    string `json:"location" yaml:"location"`
	Description string `json:"description" yaml:"description"`
}

// Upgradeable reports whether the piece has any upgrade tiers
func (a ArmorPiece) Upgradeable() bool {
	return a.MaxLevel > LevelMin
}

// MaterialRequirement is one material line inside an upgrade step
type MaterialRequirement struct {
	MaterialID string `json:"materialId" yaml:"materialId"`
	Quantity   int    `json:"quantity" yaml:"quantity"`
}

// UpgradeCost is the price of moving ArmorID from Level-1 to Level
type UpgradeCost struct {
	ArmorID      string                `json:"armorId" yaml:"armorId"`
	Level        Level                 `json:"level" yaml:"level"`
	Requirements []MaterialRequirement `json:"requirements" yaml:"requirements"`
}
