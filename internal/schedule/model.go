package schedule

import "time"

type MealTiming string

const (
	MealBefore  MealTiming = "before"
	MealWith    MealTiming = "with"
	MealAfter   MealTiming = "after"
	MealBetween MealTiming = "between"
)

// Dose is one medication as placed into a slot, carrying its pass-through
// display fields.
type Dose struct {
	Name     string   `json:"name"`
	Dosage   string   `json:"dosage,omitempty"`
	Notes    string   `json:"notes,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Slot is a single clock time and everything dosed at it. Time is a
// zero-padded 24-hour "HH:MM" string, so lexicographic order is clock order.
type Slot struct {
	Time         string     `json:"time"`
	Medications  []Dose     `json:"medications"`
	MealTiming   MealTiming `json:"mealTiming,omitempty"`
	Instructions []string   `json:"instructions,omitempty"`
	Warnings     []string   `json:"warnings,omitempty"`
}

type MealPlan struct {
	Breakfast string   `json:"breakfast"`
	Lunch     string   `json:"lunch"`
	Dinner    string   `json:"dinner"`
	Snacks    []string `json:"snacks,omitempty"`
}

// DailySchedule is the generator's output: a pure value the engine holds no
// reference to after returning it.
type DailySchedule struct {
	Date                time.Time `json:"date"`
	Slots               []Slot    `json:"slots"`
	GeneralInstructions []string  `json:"generalInstructions"`
	Warnings            []string  `json:"warnings"`
	MealPlan            *MealPlan `json:"mealPlan,omitempty"`
}
