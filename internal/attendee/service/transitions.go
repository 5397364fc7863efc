package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventdesk/internal/attendee/models"
	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/platform/audit"
	"eventdesk/pkg/platform/sentinel"
)

// transition runs apply on a copy of the attendee, saves, and only then
// swaps the copy in. If the save fails the stored attendee is put back so
// memory never runs ahead of the snapshot.
func (m *Manager) transition(ctx context.Context, op, id string, apply func(a *models.Attendee, now time.Time) error) (*models.Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.registry.Get(id)
	if !ok {
		return nil, m.reject(ctx, op, notFound(id), "identifier", id)
	}
	next := current.Clone()
	if err := apply(next, m.now(ctx)); err != nil {
		return nil, m.reject(ctx, op, err, "identifier", id)
	}
	if err := m.registry.Put(next); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update attendee")
	}
	if err := m.persist(ctx, m.registry); err != nil {
		_ = m.registry.Put(current)
		return nil, err
	}
	return next.Clone(), nil
}

func notRegistered(a *models.Attendee) error {
	return dErrors.New(dErrors.CodeNotRegistered,
		fmt.Sprintf("Attendee %s has not checked in yet", a.Name))
}

// CheckIn registers the attendee at the current time. It is the gate for
// lunch and kit collection.
func (m *Manager) CheckIn(ctx context.Context, id string) (*models.Result, error) {
	start := time.Now()
	defer m.observe("check_in", start)

	a, err := m.transition(ctx, "check_in", id, func(a *models.Attendee, now time.Time) error {
		if err := a.CheckIn(now); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeAlreadyDone, fmt.Sprintf("Attendee %s already checked in", a.Name))
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "check-in failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logAudit(ctx, audit.EventAttendeeCheckedIn, "identifier", a.Identifier)
	if m.metrics != nil {
		m.metrics.IncrementCheckIn()
	}
	return &models.Result{Message: fmt.Sprintf("Successfully checked in %s", a.Name), Attendee: a}, nil
}

// CollectLunch records lunch for day, or for today when day is nil.
func (m *Manager) CollectLunch(ctx context.Context, id string, day *models.Date) (*models.Result, error) {
	start := time.Now()
	defer m.observe("collect_lunch", start)

	var collected models.Date
	a, err := m.transition(ctx, "collect_lunch", id, func(a *models.Attendee, now time.Time) error {
		if !a.Registered {
			return notRegistered(a)
		}
		collected = models.DateOf(now)
		if day != nil {
			collected = *day
		}
		if err := a.CollectLunch(collected); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				return dErrors.New(dErrors.CodeAlreadyDone,
					fmt.Sprintf("Attendee %s already collected lunch for %s", a.Name, collected))
			case errors.Is(err, sentinel.ErrInvalidState):
				return dErrors.New(dErrors.CodeValidation, "lunch date is required")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "lunch collection failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logAudit(ctx, audit.EventAttendeeLunchCollected,
		"identifier", a.Identifier,
		"detail", collected.String(),
	)
	if m.metrics != nil {
		m.metrics.IncrementLunch()
	}
	return &models.Result{Message: fmt.Sprintf("Successfully marked lunch collected for %s", a.Name), Attendee: a}, nil
}

// CollectKit marks the attendee's kit as handed out.
func (m *Manager) CollectKit(ctx context.Context, id string) (*models.Result, error) {
	start := time.Now()
	defer m.observe("collect_kit", start)

	a, err := m.transition(ctx, "collect_kit", id, func(a *models.Attendee, _ time.Time) error {
		if !a.Registered {
			return notRegistered(a)
		}
		if err := a.CollectKit(); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeAlreadyDone, fmt.Sprintf("Attendee %s already collected their kit", a.Name))
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "kit collection failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.logAudit(ctx, audit.EventAttendeeKitCollected, "identifier", a.Identifier)
	if m.metrics != nil {
		m.metrics.IncrementKit()
	}
	return &models.Result{Message: fmt.Sprintf("Successfully marked kit collected for %s", a.Name), Attendee: a}, nil
}
