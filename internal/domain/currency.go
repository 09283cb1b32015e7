package domain

// rupeesByLevel is the rupee price of reaching a level, identical for every armor piece
var rupeesByLevel = map[Level]int{
	1: 10,
	2: 50,
	3: 200,
	4: 500,
}

// RupeesForLevel returns the rupee cost of the step that unlocks level.
// Levels without a step (0 or out of range) cost nothing.
func RupeesForLevel(level Level) int {
	return rupeesByLevel[level]
}
