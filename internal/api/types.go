package api

import (
	"github.com/dosewise/medsafe/internal/directory"
	"github.com/dosewise/medsafe/internal/schedule"
	"github.com/dosewise/medsafe/internal/timing"
)

type MedicationInput struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`

	WithFood          *bool    `json:"withFood,omitempty"`
	TimeOfDay         string   `json:"timeOfDay,omitempty"`
	SeparationMinutes int      `json:"separationMinutes,omitempty"`
	AvoidFoods        []string `json:"avoidFoods,omitempty"`
	RequireFoods      []string `json:"requireFoods,omitempty"`
	BeforeMealMinutes int      `json:"beforeMealMinutes,omitempty"`
	AfterMealMinutes  int      `json:"afterMealMinutes,omitempty"`

	AcidicEnvironment  bool `json:"acidicEnvironment,omitempty"`
	FatSoluble         bool `json:"fatSoluble,omitempty"`
	Drowsiness         bool `json:"drowsiness,omitempty"`
	Photosensitivity   bool `json:"photosensitivity,omitempty"`
	AlcoholInteraction bool `json:"alcoholInteraction,omitempty"`
}

func (in MedicationInput) toTiming() timing.MedicationTiming {
	return timing.MedicationTiming{
		Name:               in.Name,
		Dosage:             in.Dosage,
		Frequency:          in.Frequency,
		Notes:              in.Notes,
		WithFood:           in.WithFood,
		TimeOfDay:          timing.TimeOfDay(in.TimeOfDay),
		SeparationMinutes:  in.SeparationMinutes,
		AvoidFoods:         in.AvoidFoods,
		RequireFoods:       in.RequireFoods,
		BeforeMealMinutes:  in.BeforeMealMinutes,
		AfterMealMinutes:   in.AfterMealMinutes,
		AcidicEnvironment:  in.AcidicEnvironment,
		FatSoluble:         in.FatSoluble,
		Drowsiness:         in.Drowsiness,
		Photosensitivity:   in.Photosensitivity,
		AlcoholInteraction: in.AlcoholInteraction,
	}
}

type ScheduleRequest struct {
	Date        string            `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Medications []MedicationInput `json:"medications"`
}

type ScheduleResponse struct {
	Schedule schedule.DailySchedule `json:"schedule"`
}

type SearchResponse struct {
	Query      string               `json:"query"`
	Results    []directory.DrugInfo `json:"results"`
	DidYouMean []string             `json:"didYouMean,omitempty"`
}

type SuggestionsResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
