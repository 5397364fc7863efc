package models

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"eventdesk/pkg/platform/sentinel"
)

type RegistrySuite struct {
	suite.Suite
	reg *Registry
}

func (s *RegistrySuite) SetupTest() {
	s.reg = NewRegistry()
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) add(id, mail string) *Attendee {
	a, err := NewAttendee(id, "Name "+id, mail, "", "")
	s.Require().NoError(err)
	s.Require().NoError(s.reg.Add(a))
	return a
}

// TestUniqueness verifies identifier and case-insensitive email uniqueness.
func (s *RegistrySuite) TestUniqueness() {
	s.add("id1", "ann@x.com")

	s.Run("duplicate identifier conflicts", func() {
		a, err := NewAttendee("id1", "Other", "other@x.com", "", "")
		s.Require().NoError(err)
		s.ErrorIs(s.reg.Add(a), sentinel.ErrConflict)
	})

	s.Run("duplicate email conflicts regardless of case", func() {
		a, err := NewAttendee("id2", "Bo", "ANN@X.COM", "", "")
		s.Require().NoError(err)
		s.ErrorIs(s.reg.Add(a), sentinel.ErrConflict)
		s.True(s.reg.HasEmail(" Ann@x.com "))
	})

	s.Equal(1, s.reg.Len())
}

// TestOrderAndClone verifies insertion order and deep copies.
func (s *RegistrySuite) TestOrderAndClone() {
	s.add("b", "b@x.com")
	s.add("a", "a@x.com")
	s.add("c", "c@x.com")

	var ids []string
	for _, a := range s.reg.All() {
		ids = append(ids, a.Identifier)
	}
	s.Equal([]string{"b", "a", "c"}, ids)

	clone := s.reg.Clone()
	got, ok := clone.Get("a")
	s.Require().True(ok)
	got.ApplyKit()

	orig, _ := s.reg.Get("a")
	s.False(orig.KitCollected)
}

// TestPut verifies replacing a stored attendee.
func (s *RegistrySuite) TestPut() {
	a := s.add("id1", "ann@x.com")
	c := a.Clone()
	c.ApplyKit()

	s.Require().NoError(s.reg.Put(c))
	got, _ := s.reg.Get("id1")
	s.True(got.KitCollected)

	missing, err := NewAttendee("nope", "N", "n@x.com", "", "")
	s.Require().NoError(err)
	s.ErrorIs(s.reg.Put(missing), sentinel.ErrNotFound)
}
