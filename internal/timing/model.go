package timing

import "strings"

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Bedtime   TimeOfDay = "bedtime"
	Any       TimeOfDay = "any"
)

// MedicationTiming is one medication's scheduling-relevant profile. The zero
// value means "no constraints known": an empty TimeOfDay, a nil WithFood and
// zero minute fields are all treated as unset when merging.
type MedicationTiming struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`

	WithFood  *bool     `json:"withFood,omitempty"`
	TimeOfDay TimeOfDay `json:"timeOfDay,omitempty"`

	// SeparationMinutes is the minimum gap this medication needs from other
	// substances dosed at the same time. Zero means no requirement.
	SeparationMinutes int `json:"separationMinutes,omitempty"`

	AvoidFoods   []string `json:"avoidFoods,omitempty"`
	RequireFoods []string `json:"requireFoods,omitempty"`

	BeforeMealMinutes int `json:"beforeMealMinutes,omitempty"`
	AfterMealMinutes  int `json:"afterMealMinutes,omitempty"`

	AcidicEnvironment  bool `json:"acidicEnvironment,omitempty"`
	FatSoluble         bool `json:"fatSoluble,omitempty"`
	Drowsiness         bool `json:"drowsiness,omitempty"`
	Photosensitivity   bool `json:"photosensitivity,omitempty"`
	AlcoholInteraction bool `json:"alcoholInteraction,omitempty"`
}

// WithFoodTrue reports whether the medication explicitly requires food.
func (m MedicationTiming) WithFoodTrue() bool {
	return m.WithFood != nil && *m.WithFood
}

var thyroidNames = []string{"levothyroxine", "synthroid", "liothyronine", "armour thyroid", "thyroid"}

// IsThyroid reports whether the name refers to a thyroid hormone medication.
func IsThyroid(name string) bool {
	return matchesAny(name, thyroidNames)
}

var calciumNames = []string{"calcium", "tums", "caltrate", "citracal", "os-cal"}

// ContainsCalcium reports whether the name refers to a calcium-containing
// medication or supplement.
func ContainsCalcium(name string) bool {
	return matchesAny(name, calciumNames)
}

var ironNames = []string{"iron", "ferrous"}

// IsIron reports whether the name refers to an iron supplement.
func IsIron(name string) bool {
	return matchesAny(name, ironNames)
}

func matchesAny(name string, keys []string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, k := range keys {
		if strings.Contains(n, k) {
			return true
		}
	}
	return false
}

func boolPtr(b bool) *bool { return &b }
