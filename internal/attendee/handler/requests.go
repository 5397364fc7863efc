package handler

import (
	"strings"

	"eventdesk/internal/attendee/models"
	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/email"
)

// RegisterRequest is the body of POST /attendees.
type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !email.LooksValid(r.Email) {
		return dErrors.New(dErrors.CodeValidation, "email is not a valid address")
	}
	return nil
}

// Row converts the request to an import row.
func (r *RegisterRequest) Row() models.ImportRow {
	row := models.ImportRow{Name: r.Name, Email: r.Email, Phone: r.Phone, Role: r.Role}
	row.Normalize()
	return row
}

// LunchRequest carries an optional YYYY-MM-DD date. A missing date means today.
type LunchRequest struct {
	Date string `json:"date,omitempty"`

	day *models.Date
}

func (r *LunchRequest) Validate() error {
	raw := strings.TrimSpace(r.Date)
	if raw == "" {
		return nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
	}
	r.day = &d
	return nil
}

// Day returns the parsed date, or nil when the request did not name one.
func (r *LunchRequest) Day() *models.Date {
	return r.day
}

// ListResponse is a page of attendees.
type ListResponse struct {
	Attendees []*models.Attendee `json:"attendees"`
	Total     int                `json:"total"`
	Skip      int                `json:"skip"`
	Limit     int                `json:"limit"`
}

// BackupResponse reports where a manual backup was written. Path is empty
// when there was no snapshot to copy.
type BackupResponse struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}
