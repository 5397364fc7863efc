package models

import (
	"fmt"

	"eventdesk/pkg/email"
	"eventdesk/pkg/platform/sentinel"
)

// Registry maps identifiers to attendees and remembers insertion order for
// display. It is not safe for concurrent use; the owning service serialises
// access.
type Registry struct {
	byID    map[string]*Attendee
	byEmail map[string]string
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]*Attendee),
		byEmail: make(map[string]string),
	}
}

// Len returns the number of attendees.
func (r *Registry) Len() int {
	return len(r.order)
}

// Get returns the attendee stored under identifier.
func (r *Registry) Get(identifier string) (*Attendee, bool) {
	a, ok := r.byID[identifier]
	return a, ok
}

// HasIdentifier reports whether identifier is taken.
func (r *Registry) HasIdentifier(identifier string) bool {
	_, ok := r.byID[identifier]
	return ok
}

// HasEmail reports whether an attendee with this address exists, ignoring case.
func (r *Registry) HasEmail(mail string) bool {
	_, ok := r.byEmail[email.Normalize(mail)]
	return ok
}

// Add inserts a new attendee. Returns sentinel.ErrConflict when the
// identifier or email is already present.
func (r *Registry) Add(a *Attendee) error {
	if r.HasIdentifier(a.Identifier) {
		return fmt.Errorf("identifier %q: %w", a.Identifier, sentinel.ErrConflict)
	}
	key := email.Normalize(a.Email)
	if _, ok := r.byEmail[key]; ok {
		return fmt.Errorf("email %q: %w", key, sentinel.ErrConflict)
	}
	r.byID[a.Identifier] = a
	r.byEmail[key] = a.Identifier
	r.order = append(r.order, a.Identifier)
	return nil
}

// Put swaps the stored attendee for one with the same identifier. Identity
// fields are immutable, so the email index is untouched.
func (r *Registry) Put(a *Attendee) error {
	if !r.HasIdentifier(a.Identifier) {
		return fmt.Errorf("identifier %q: %w", a.Identifier, sentinel.ErrNotFound)
	}
	r.byID[a.Identifier] = a
	return nil
}

// All returns the attendees in insertion order. The pointers are the
// registry's own; callers outside the owning service must Clone.
func (r *Registry) All() []*Attendee {
	out := make([]*Attendee, 0, len(r.order))
	for _, identifier := range r.order {
		out = append(out, r.byID[identifier])
	}
	return out
}

// Clone returns a deep copy.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		byID:    make(map[string]*Attendee, len(r.byID)),
		byEmail: make(map[string]string, len(r.byEmail)),
		order:   append([]string(nil), r.order...),
	}
	for k, a := range r.byID {
		c.byID[k] = a.Clone()
	}
	for k, v := range r.byEmail {
		c.byEmail[k] = v
	}
	return c
}
