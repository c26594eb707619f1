package timing

import "strings"

// KnowledgeBase is the static lookup from a medication name to its known
// timing/food constraints. It never performs I/O; a Postgres-backed table can
// replace the embedded one via NewKnowledgeBaseFromEntries.
type KnowledgeBase struct {
	entries []Entry
}

// NewKnowledgeBase returns a knowledge base over the embedded default table.
func NewKnowledgeBase() *KnowledgeBase {
	return NewKnowledgeBaseFromEntries(DefaultTable)
}

// NewKnowledgeBaseFromEntries builds a knowledge base over an explicit,
// ordered rule set. Order is significant: partial matches resolve to the
// first entry that hits.
func NewKnowledgeBaseFromEntries(entries []Entry) *KnowledgeBase {
	return &KnowledgeBase{entries: entries}
}

// Lookup resolves a medication name to its known constraints. Matching is
// case-insensitive: an exact key match wins, otherwise the first entry whose
// key is a substring of the name (or the other way around) is returned. A
// miss returns the zero value and false, which merges as "no constraints".
func (kb *KnowledgeBase) Lookup(name string) (MedicationTiming, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return MedicationTiming{}, false
	}

	for _, e := range kb.entries {
		if strings.ToLower(e.Key) == n {
			return e.Data, true
		}
	}

	for _, e := range kb.entries {
		k := strings.ToLower(e.Key)
		if strings.Contains(n, k) || strings.Contains(k, n) {
			return e.Data, true
		}
	}

	return MedicationTiming{}, false
}

// Enrich merges knowledge-base data into a caller-supplied medication and
// returns a new record. Explicit caller data is never overwritten: looked-up
// values only fill fields the input left unset. Boolean hazard flags are
// OR-merged since the caller cannot meaningfully "unset" a known hazard.
func (kb *KnowledgeBase) Enrich(in MedicationTiming) MedicationTiming {
	defaults, ok := kb.Lookup(in.Name)
	if !ok {
		return in
	}

	out := in

	if out.WithFood == nil {
		out.WithFood = defaults.WithFood
	}
	if out.TimeOfDay == "" {
		out.TimeOfDay = defaults.TimeOfDay
	}
	if out.SeparationMinutes == 0 {
		out.SeparationMinutes = defaults.SeparationMinutes
	}
	if len(out.AvoidFoods) == 0 {
		out.AvoidFoods = defaults.AvoidFoods
	}
	if len(out.RequireFoods) == 0 {
		out.RequireFoods = defaults.RequireFoods
	}
	if out.BeforeMealMinutes == 0 {
		out.BeforeMealMinutes = defaults.BeforeMealMinutes
	}
	if out.AfterMealMinutes == 0 {
		out.AfterMealMinutes = defaults.AfterMealMinutes
	}

	out.AcidicEnvironment = out.AcidicEnvironment || defaults.AcidicEnvironment
	out.FatSoluble = out.FatSoluble || defaults.FatSoluble
	out.Drowsiness = out.Drowsiness || defaults.Drowsiness
	out.Photosensitivity = out.Photosensitivity || defaults.Photosensitivity
	out.AlcoholInteraction = out.AlcoholInteraction || defaults.AlcoholInteraction

	return out
}
