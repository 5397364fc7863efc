package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "eventdesk/pkg/domain-errors"
	"eventdesk/pkg/platform/sentinel"
)

type AttendeeSuite struct {
	suite.Suite
	now time.Time
}

func (s *AttendeeSuite) SetupTest() {
	s.now = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
}

func TestAttendeeSuite(t *testing.T) {
	suite.Run(t, new(AttendeeSuite))
}

func (s *AttendeeSuite) newAttendee() *Attendee {
	a, err := NewAttendee("id1", "Ann", "A@X.com", "", "")
	s.Require().NoError(err)
	return a
}

// TestConstruction verifies identity validation and normalisation.
func (s *AttendeeSuite) TestConstruction() {
	s.Run("normalises email and defaults role", func() {
		a := s.newAttendee()
		s.Equal("a@x.com", a.Email)
		s.Equal(DefaultRole, a.Role)
		s.False(a.Registered)
		s.Nil(a.RegistrationTime)
		s.Empty(a.LunchCollected)
	})

	s.Run("blank role falls back to the default, given role is trimmed", func() {
		a, err := NewAttendee("id1", "Ann", "a@x.com", "", "   ")
		s.Require().NoError(err)
		s.Equal(DefaultRole, a.Role)

		a, err = NewAttendee("id2", "Bo", "b@x.com", "", " Speaker ")
		s.Require().NoError(err)
		s.Equal("Speaker", a.Role)
	})

	s.Run("rejects missing required fields", func() {
		_, err := NewAttendee("", "Ann", "a@x.com", "", "")
		s.True(dErrors.Is(err, dErrors.CodeValidation))

		_, err = NewAttendee("id1", " ", "a@x.com", "", "")
		s.True(dErrors.Is(err, dErrors.CodeValidation))

		_, err = NewAttendee("id1", "Ann", "  ", "", "")
		s.True(dErrors.Is(err, dErrors.CodeValidation))
	})
}

// TestCheckIn verifies the one-time registration transition.
func (s *AttendeeSuite) TestCheckIn() {
	s.Run("first check-in sets time", func() {
		a := s.newAttendee()
		s.Require().NoError(a.CheckIn(s.now))
		s.True(a.Registered)
		s.Require().NotNil(a.RegistrationTime)
		s.Equal(s.now, *a.RegistrationTime)
	})

	s.Run("second check-in keeps original time", func() {
		a := s.newAttendee()
		s.Require().NoError(a.CheckIn(s.now))

		err := a.CheckIn(s.now.Add(time.Hour))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
		s.Equal(s.now, *a.RegistrationTime)
	})
}

// TestLunch verifies per-day idempotency.
func (s *AttendeeSuite) TestLunch() {
	day1 := Date{Year: 2024, Month: time.May, Day: 1}
	day2 := Date{Year: 2024, Month: time.May, Day: 2}

	s.Run("same day twice is rejected", func() {
		a := s.newAttendee()
		s.Require().NoError(a.CollectLunch(day1))
		s.ErrorIs(a.CollectLunch(day1), sentinel.ErrAlreadyUsed)
		s.Len(a.LunchCollected, 1)
	})

	s.Run("different days both recorded", func() {
		a := s.newAttendee()
		s.Require().NoError(a.CollectLunch(day2))
		s.Require().NoError(a.CollectLunch(day1))
		s.Equal([]string{"2024-05-01", "2024-05-02"}, a.LunchCollected.Strings())
	})

	s.Run("zero date is invalid", func() {
		a := s.newAttendee()
		s.ErrorIs(a.CollectLunch(Date{}), sentinel.ErrInvalidState)
	})
}

// TestKit verifies the one-time kit flag.
func (s *AttendeeSuite) TestKit() {
	a := s.newAttendee()
	s.Require().NoError(a.CollectKit())
	s.True(a.KitCollected)
	s.ErrorIs(a.CollectKit(), sentinel.ErrAlreadyUsed)
	s.True(a.KitCollected)
}

// TestClone verifies copies do not share mutable state.
func (s *AttendeeSuite) TestClone() {
	a := s.newAttendee()
	s.Require().NoError(a.CheckIn(s.now))
	c := a.Clone()

	c.ApplyLunch(DateOf(s.now))
	*c.RegistrationTime = s.now.Add(time.Hour)

	s.Empty(a.LunchCollected)
	s.Equal(s.now, *a.RegistrationTime)
}
