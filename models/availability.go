package models

// SlotConflict describes why a requested slot is unavailable.
type SlotConflict struct {
	Kind  string `json:"kind"` // "booking" or "blocked_date"
	RefID string `json:"ref_id"`
	Date  string `json:"date"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// AvailabilityResult is the outcome of an availability check.
type AvailabilityResult struct {
	Available bool           `json:"available"`
	Conflicts []SlotConflict `json:"conflicts,omitempty"`
}
