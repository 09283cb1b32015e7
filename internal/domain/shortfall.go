package domain

import "sort"

// Amounts compares what the player has with what a plan needs
type Amounts struct {
	Have    int `json:"have"`
	Needed  int `json:"needed"`
	Missing int `json:"missing"`
}

// NewAmounts builds Amounts with Missing = max(0, needed-have)
func NewAmounts(have, needed int) Amounts {
	missing := needed - have
	if missing < 0 {
		missing = 0
	}
	return Amounts{Have: have, Needed: needed, Missing: missing}
}

// Shortfall is the deficit between owned state and target upgrade levels
type Shortfall struct {
	ByMaterial map[string]Amounts `json:"byMaterial"`
	Rupees     Amounts            `json:"rupees"`
}

// MaterialShortfall is one row of a sorted shortfall report
type MaterialShortfall struct {
	MaterialID string `json:"materialId"`
	Amounts
}

// Materials returns the per-material rows ordered by material id
func (s Shortfall) Materials() []MaterialShortfall {
	rows := make([]MaterialShortfall, 0, len(s.ByMaterial))
	for id, amounts := range s.ByMaterial {
		rows = append(rows, MaterialShortfall{MaterialID: id, Amounts: amounts})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MaterialID < rows[j].MaterialID })
	return rows
}

// Complete reports whether nothing is missing
func (s Shortfall) Complete() bool {
	if s.Rupees.Missing > 0 {
		return false
	}
	for _, a := range s.ByMaterial {
		if a.Missing > 0 {
			return false
		}
	}
	return true
}
