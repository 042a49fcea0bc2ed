package entities

// StaffAssignment maps a staff email to the single venue that email may
// administer. Assignments are static reference data created out-of-band;
// capacity mutations are authorized against them.
type StaffAssignment struct {
	Email    string `json:"email" db:"email"`
	VenueKey string `json:"venue_key" db:"venue_key"`
}
