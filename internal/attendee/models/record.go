package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventdesk/pkg/platform/sentinel"
)

// legacyTimeLayout is how earlier snapshots wrote registration times.
const legacyTimeLayout = "2006-01-02 15:04:05.999999"

// Record is the persisted and wire shape of an Attendee.
type Record struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Role             string   `json:"role"`
	Identifier       string   `json:"identifier"`
	Registered       bool     `json:"registered"`
	LunchCollected   []string `json:"lunch_collected"`
	KitCollected     bool     `json:"kit_collected"`
	RegistrationTime *string  `json:"registration_time"`
}

// ToRecord converts the attendee to its persisted shape. Lunch dates are sorted.
func (a *Attendee) ToRecord() Record {
	r := Record{
		Name:           a.Name,
		Email:          a.Email,
		Phone:          a.Phone,
		Role:           a.Role,
		Identifier:     a.Identifier,
		Registered:     a.Registered,
		LunchCollected: a.LunchCollected.Strings(),
		KitCollected:   a.KitCollected,
	}
	if a.RegistrationTime != nil {
		ts := a.RegistrationTime.Format(time.RFC3339Nano)
		r.RegistrationTime = &ts
	}
	return r
}

// MarshalJSON renders the attendee in its record shape.
func (a Attendee) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToRecord())
}

// FromRecord rebuilds an attendee from a persisted record stored under key.
// Every failure wraps sentinel.ErrCorrupt; snapshots are not trusted blindly.
func FromRecord(key string, r Record) (*Attendee, error) {
	if strings.TrimSpace(r.Identifier) == "" {
		return nil, corrupt(key, "missing identifier")
	}
	if key != "" && key != r.Identifier {
		return nil, corrupt(key, fmt.Sprintf("key does not match identifier %q", r.Identifier))
	}
	if strings.TrimSpace(r.Name) == "" {
		return nil, corrupt(key, "missing name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return nil, corrupt(key, "missing email")
	}

	a, err := NewAttendee(r.Identifier, r.Name, r.Email, r.Phone, r.Role)
	if err != nil {
		return nil, corrupt(key, err.Error())
	}

	for _, raw := range r.LunchCollected {
		day, err := ParseDate(raw)
		if err != nil {
			return nil, corrupt(key, err.Error())
		}
		if a.LunchCollected.Has(day) {
			return nil, corrupt(key, "duplicate lunch date "+raw)
		}
		a.ApplyLunch(day)
	}

	switch {
	case r.Registered && r.RegistrationTime == nil:
		return nil, corrupt(key, "registered without registration_time")
	case !r.Registered && r.RegistrationTime != nil:
		return nil, corrupt(key, "registration_time set but not registered")
	case r.Registered:
		ts, err := parseRegistrationTime(*r.RegistrationTime)
		if err != nil {
			return nil, corrupt(key, err.Error())
		}
		a.ApplyCheckIn(ts)
	}

	a.KitCollected = r.KitCollected
	return a, nil
}

func parseRegistrationTime(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(legacyTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse registration_time %q: %w", raw, err)
	}
	return ts, nil
}

func corrupt(key, reason string) error {
	return fmt.Errorf("record %q: %s: %w", key, reason, sentinel.ErrCorrupt)
}
