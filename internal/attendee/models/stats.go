package models

import "sort"

// Stats is a point-in-time aggregate over the registry.
type Stats struct {
	Total             int            `json:"total"`
	CheckedIn         int            `json:"checked_in"`
	CheckInPercentage float64        `json:"check_in_percentage"`
	KitsCollected     int            `json:"kits_collected"`
	KitPercentage     float64        `json:"kit_percentage"`
	RoleTotals        map[string]int `json:"role_totals"`
	RoleCheckedIn     map[string]int `json:"role_checked_in"`
	LunchByDate       map[string]int `json:"lunch_by_date"`
}

// ComputeStats aggregates attendees. Percentages are 0 for an empty input.
func ComputeStats(attendees []*Attendee) Stats {
	s := Stats{
		Total:         len(attendees),
		RoleTotals:    make(map[string]int),
		RoleCheckedIn: make(map[string]int),
		LunchByDate:   make(map[string]int),
	}
	for _, a := range attendees {
		s.RoleTotals[a.Role]++
		if a.Registered {
			s.CheckedIn++
			s.RoleCheckedIn[a.Role]++
		}
		if a.KitCollected {
			s.KitsCollected++
		}
		for d := range a.LunchCollected {
			s.LunchByDate[d.String()]++
		}
	}
	s.CheckInPercentage = percent(s.CheckedIn, s.Total)
	s.KitPercentage = percent(s.KitsCollected, s.Total)
	return s
}

// RolePercentage is the checked-in share of role, 0 when the role is empty.
func (s Stats) RolePercentage(role string) float64 {
	return percent(s.RoleCheckedIn[role], s.RoleTotals[role])
}

// Roles returns role names in ascending order.
func (s Stats) Roles() []string {
	return sortedKeys(s.RoleTotals)
}

// LunchDates returns the lunch days in ascending order.
func (s Stats) LunchDates() []string {
	return sortedKeys(s.LunchByDate)
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
