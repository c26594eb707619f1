package interaction

// Interaction is one classified pairwise finding between two of the caller's
// medications.
type Interaction struct {
	DrugName        string   `json:"drugName"`
	InteractingDrug string   `json:"interactingDrug"`
	Severity        Severity `json:"severity"`
	Description     string   `json:"description"`
	Source          string   `json:"source"`
}

// ReportStatus distinguishes "we checked and found nothing" from "we could
// not check". Callers must never present StatusUnavailable as a safety
// guarantee.
type ReportStatus string

const (
	StatusFound       ReportStatus = "found"
	StatusNoneFound   ReportStatus = "none_found"
	StatusUnavailable ReportStatus = "unavailable"
)

// Report is the tri-state outcome of an interaction lookup.
type Report struct {
	Status       ReportStatus  `json:"status"`
	Interactions []Interaction `json:"interactions"`
}
