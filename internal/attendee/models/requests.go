package models

import "strings"

// ImportRow is one tabular input row. Only Name and Email are required.
type ImportRow struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Normalize trims every field in place.
func (r *ImportRow) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Role = strings.TrimSpace(r.Role)
}

// Complete reports whether the required fields are present.
func (r ImportRow) Complete() bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Email) != ""
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Imported  int         `json:"added"`
	Skipped   int         `json:"skipped"`
	Invalid   int         `json:"invalid"`
	Total     int         `json:"total_processed"`
	Artifacts []string    `json:"artifacts,omitempty"`
	Attendees []*Attendee `json:"attendees"`
}

// Result is the outcome of a successful state transition.
type Result struct {
	Message  string    `json:"message"`
	Attendee *Attendee `json:"attendee"`
}

