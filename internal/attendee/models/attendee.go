package models

import (
	"strings"
	"time"

	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/email"
	"eventdesk/pkg/platform/sentinel"
	pstrings "eventdesk/pkg/platform/strings"
)

// DefaultRole is assigned when an import row or registration leaves Role blank.
const DefaultRole = "Attendee"

// Attendee is the aggregate root for a person tracked at the event.
//
// Invariants:
//   - Identifier is non-empty and immutable after construction
//   - Email is non-empty and stored trimmed and lowercased
//   - RegistrationTime is non-nil iff Registered is true
//   - Registered and KitCollected never go from true back to false
//   - LunchCollected holds each day at most once
//
// The "must be registered before lunch or kit" rule is enforced by the
// service layer, not here, so imports and snapshots can hold any state the
// invariants above allow.
type Attendee struct {
	Identifier       string
	Name             string
	Email            string
	Phone            string
	Role             string
	Registered       bool
	RegistrationTime *time.Time
	LunchCollected   LunchDates
	KitCollected     bool
}

// NewAttendee validates identity fields and returns an unregistered attendee.
func NewAttendee(identifier, name, mail, phone, role string) (*Attendee, error) {
	identifier = strings.TrimSpace(identifier)
	name = strings.TrimSpace(name)
	mail = email.Normalize(mail)
	if identifier == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "identifier cannot be empty")
	}
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if mail == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email cannot be empty")
	}
	role = pstrings.FirstNonEmpty(DefaultRole, role)
	return &Attendee{
		Identifier:     identifier,
		Name:           name,
		Email:          mail,
		Phone:          strings.TrimSpace(phone),
		Role:           role,
		LunchCollected: LunchDates{},
	}, nil
}

// CanCheckIn returns sentinel.ErrAlreadyUsed once the attendee is registered.
func (a *Attendee) CanCheckIn() error {
	if a.Registered {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

// ApplyCheckIn marks the attendee registered at now.
// Call CanCheckIn first to validate the transition.
func (a *Attendee) ApplyCheckIn(now time.Time) {
	a.Registered = true
	a.RegistrationTime = &now
}

// CheckIn validates and applies check-in in one call.
func (a *Attendee) CheckIn(now time.Time) error {
	if err := a.CanCheckIn(); err != nil {
		return err
	}
	a.ApplyCheckIn(now)
	return nil
}

// CanCollectLunch returns sentinel.ErrAlreadyUsed if lunch for day was already recorded.
func (a *Attendee) CanCollectLunch(day Date) error {
	if day.IsZero() {
		return sentinel.ErrInvalidState
	}
	if a.LunchCollected.Has(day) {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

// ApplyLunch records lunch for day.
func (a *Attendee) ApplyLunch(day Date) {
	if a.LunchCollected == nil {
		a.LunchCollected = LunchDates{}
	}
	a.LunchCollected[day] = struct{}{}
}

// CollectLunch validates and records lunch for day in one call.
func (a *Attendee) CollectLunch(day Date) error {
	if err := a.CanCollectLunch(day); err != nil {
		return err
	}
	a.ApplyLunch(day)
	return nil
}

// CanCollectKit returns sentinel.ErrAlreadyUsed once the kit was handed out.
func (a *Attendee) CanCollectKit() error {
	if a.KitCollected {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

// ApplyKit marks the kit as collected.
func (a *Attendee) ApplyKit() {
	a.KitCollected = true
}

// CollectKit validates and applies kit collection in one call.
func (a *Attendee) CollectKit() error {
	if err := a.CanCollectKit(); err != nil {
		return err
	}
	a.ApplyKit()
	return nil
}

// Clone returns a deep copy safe to hand out of the registry.
func (a *Attendee) Clone() *Attendee {
	c := *a
	if a.RegistrationTime != nil {
		t := *a.RegistrationTime
		c.RegistrationTime = &t
	}
	c.LunchCollected = make(LunchDates, len(a.LunchCollected))
	for d := range a.LunchCollected {
		c.LunchCollected[d] = struct{}{}
	}
	return &c
}

// SearchFields returns the fields matched by free-text search.
func (a *Attendee) SearchFields() []string {
	return []string{a.Name, a.Email, a.Phone, a.Role, a.Identifier}
}
