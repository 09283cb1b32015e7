package domain

// OwnedState is the player's persisted snapshot.
// Absent keys are read as zero.
type OwnedState struct {
	Materials   map[string]int   `json:"materials"`
	ArmorLevels map[string]Level `json:"armorLevels"`
	Rupees      int              `json:"rupees"`
}

// MaterialCount returns the owned quantity of a material, 0 when absent
func (s OwnedState) MaterialCount(materialID string) int {
	return s.Materials[materialID]
}

// ArmorLevel returns the current level of an armor piece, 0 when absent
func (s OwnedState) ArmorLevel(armorID string) Level {
	return s.ArmorLevels[armorID]
}

// Clone returns a deep copy so callers can mutate maps freely
func (s OwnedState) Clone() OwnedState {
	out := OwnedState{
		Materials:   make(map[string]int, len(s.Materials)),
		ArmorLevels: make(map[string]Level, len(s.ArmorLevels)),
		Rupees:      s.Rupees,
	}
	for k, v := range s.Materials {
		out.Materials[k] = v
	}
	for k, v := range s.ArmorLevels {
		out.ArmorLevels[k] = v
	}
	return out
}
