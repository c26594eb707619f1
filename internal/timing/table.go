package timing

// Entry pairs a lookup key with the timing data it carries. The table is an
// ordered slice, not a map: partial matching walks it top to bottom and the
// first hit wins, so more specific keys must come before broader ones.
type Entry struct {
	Key  string
	Data MedicationTiming
}

// DefaultTable is the curated timing/food rule set shipped with the engine.
// Keys are matched case-insensitively, exact first and then as substrings in
// either direction.
var DefaultTable = []Entry{
	{Key: "levothyroxine", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		TimeOfDay:         Morning,
		SeparationMinutes: 240,
		AvoidFoods:        []string{"coffee", "calcium-fortified juice", "soy", "high-fiber foods"},
		BeforeMealMinutes: 60,
		AcidicEnvironment: true,
	}},
	{Key: "synthroid", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		TimeOfDay:         Morning,
		SeparationMinutes: 240,
		AvoidFoods:        []string{"coffee", "calcium-fortified juice", "soy"},
		BeforeMealMinutes: 60,
		AcidicEnvironment: true,
	}},
	{Key: "alendronate", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		TimeOfDay:         Morning,
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "mineral water"},
		BeforeMealMinutes: 30,
	}},
	{Key: "omeprazole", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		TimeOfDay:         Morning,
		BeforeMealMinutes: 30,
	}},
	{Key: "ferrous sulfate", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		TimeOfDay:         Morning,
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "coffee", "tea", "whole grains"},
		RequireFoods:      []string{"vitamin c rich foods"},
		AcidicEnvironment: true,
	}},
	{Key: "iron", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "coffee", "tea"},
		RequireFoods:      []string{"vitamin c rich foods"},
		AcidicEnvironment: true,
	}},
	{Key: "calcium", Data: MedicationTiming{
		WithFood:          boolPtr(true),
		SeparationMinutes: 240,
	}},
	{Key: "metformin", Data: MedicationTiming{
		WithFood: boolPtr(true),
	}},
	{Key: "prednisone", Data: MedicationTiming{
		WithFood:  boolPtr(true),
		TimeOfDay: Morning,
	}},
	{Key: "aspirin", Data: MedicationTiming{
		WithFood: boolPtr(true),
	}},
	{Key: "ibuprofen", Data: MedicationTiming{
		WithFood: boolPtr(true),
	}},
	{Key: "naproxen", Data: MedicationTiming{
		WithFood: boolPtr(true),
	}},
	{Key: "atorvastatin", Data: MedicationTiming{
		TimeOfDay:  Evening,
		AvoidFoods: []string{"grapefruit"},
	}},
	{Key: "simvastatin", Data: MedicationTiming{
		TimeOfDay:  Evening,
		AvoidFoods: []string{"grapefruit"},
	}},
	{Key: "vitamin d", Data: MedicationTiming{
		WithFood:   boolPtr(true),
		FatSoluble: true,
	}},
	{Key: "fish oil", Data: MedicationTiming{
		WithFood:   boolPtr(true),
		FatSoluble: true,
	}},
	{Key: "multivitamin", Data: MedicationTiming{
		WithFood:   boolPtr(true),
		TimeOfDay:  Morning,
		FatSoluble: true,
	}},
	{Key: "doxycycline", Data: MedicationTiming{
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "antacids"},
		Photosensitivity:  true,
	}},
	{Key: "tetracycline", Data: MedicationTiming{
		WithFood:          boolPtr(false),
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "antacids"},
		Photosensitivity:  true,
	}},
	{Key: "ciprofloxacin", Data: MedicationTiming{
		SeparationMinutes: 120,
		AvoidFoods:        []string{"dairy", "calcium-fortified juice", "caffeine"},
		Photosensitivity:  true,
	}},
	{Key: "metronidazole", Data: MedicationTiming{
		WithFood:           boolPtr(true),
		AlcoholInteraction: true,
	}},
	{Key: "warfarin", Data: MedicationTiming{
		TimeOfDay:          Evening,
		AvoidFoods:         []string{"kale", "spinach", "cranberry juice", "grapefruit"},
		AlcoholInteraction: true,
	}},
	{Key: "hydrochlorothiazide", Data: MedicationTiming{
		TimeOfDay:        Morning,
		Photosensitivity: true,
	}},
	{Key: "sertraline", Data: MedicationTiming{
		TimeOfDay:          Morning,
		AlcoholInteraction: true,
	}},
	{Key: "gabapentin", Data: MedicationTiming{
		Drowsiness:         true,
		AlcoholInteraction: true,
	}},
	{Key: "trazodone", Data: MedicationTiming{
		TimeOfDay:          Bedtime,
		Drowsiness:         true,
		AlcoholInteraction: true,
	}},
	{Key: "diphenhydramine", Data: MedicationTiming{
		TimeOfDay:          Bedtime,
		Drowsiness:         true,
		AlcoholInteraction: true,
	}},
	{Key: "melatonin", Data: MedicationTiming{
		TimeOfDay:  Bedtime,
		Drowsiness: true,
	}},
	{Key: "zinc", Data: MedicationTiming{
		WithFood:          boolPtr(true),
		SeparationMinutes: 120,
	}},
	{Key: "magnesium", Data: MedicationTiming{
		TimeOfDay:         Evening,
		SeparationMinutes: 120,
	}},
}
