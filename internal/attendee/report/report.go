// Package report renders the registry as CSV reports.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"eventdesk/internal/attendee/models"
)

// Kind names a report layout.
type Kind string

const (
	KindFull    Kind = "full"
	KindCheckIn Kind = "check-in"
	KindLunch   Kind = "lunch"
	KindKit     Kind = "kit"
)

// Kinds lists every report in display order.
var Kinds = []Kind{KindFull, KindCheckIn, KindLunch, KindKit}

var headers = map[Kind][]string{
	KindFull:    {"Name", "Email", "Phone", "Role", "Identifier", "Checked In", "Registration Time", "Lunch Dates", "Kit Collected"},
	KindCheckIn: {"Name", "Email", "Role", "Checked In", "Registration Time"},
	KindLunch:   {"Date", "Count", "Attendees"},
	KindKit:     {"Name", "Email", "Role", "Kit Collected"},
}

// ParseKind accepts a kind name, case-insensitively. "checkin" is taken as
// check-in.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if k == "checkin" {
		k = KindCheckIn
	}
	if _, ok := headers[k]; !ok {
		return "", fmt.Errorf("unknown report kind %q", s)
	}
	return k, nil
}

// Header returns the column names for kind.
func Header(kind Kind) []string {
	return append([]string(nil), headers[kind]...)
}

// FileName is the default export name, e.g. kit_report_20240501_093015.csv.
func FileName(kind Kind, now time.Time) string {
	return fmt.Sprintf("%s_report_%s.csv", kind, now.Format("20060102_150405"))
}

// Write renders attendees, in the order given, as a kind report.
func Write(w io.Writer, kind Kind, attendees []*models.Attendee) error {
	header, ok := headers[kind]
	if !ok {
		return fmt.Errorf("unknown report kind %q", kind)
	}
	var rows [][]string
	switch kind {
	case KindFull:
		rows = fullRows(attendees)
	case KindCheckIn:
		rows = checkInRows(attendees)
	case KindLunch:
		rows = lunchRows(attendees)
	case KindKit:
		rows = kitRows(attendees)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func registrationTime(a *models.Attendee) string {
	if a.RegistrationTime == nil {
		return ""
	}
	return a.RegistrationTime.Format(time.RFC3339)
}

func fullRows(attendees []*models.Attendee) [][]string {
	rows := make([][]string, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, []string{
			a.Name,
			a.Email,
			a.Phone,
			a.Role,
			a.Identifier,
			yesNo(a.Registered),
			registrationTime(a),
			strings.Join(a.LunchCollected.Strings(), ", "),
			yesNo(a.KitCollected),
		})
	}
	return rows
}

func checkInRows(attendees []*models.Attendee) [][]string {
	rows := make([][]string, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, []string{a.Name, a.Email, a.Role, yesNo(a.Registered), registrationTime(a)})
	}
	return rows
}

func kitRows(attendees []*models.Attendee) [][]string {
	rows := make([][]string, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, []string{a.Name, a.Email, a.Role, yesNo(a.KitCollected)})
	}
	return rows
}

// lunchRows has one row per day anyone collected lunch, ascending, naming
// attendees in registry order.
func lunchRows(attendees []*models.Attendee) [][]string {
	all := models.LunchDates{}
	for _, a := range attendees {
		for d := range a.LunchCollected {
			all[d] = struct{}{}
		}
	}
	days := all.Sorted()
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		var names []string
		for _, a := range attendees {
			if a.LunchCollected.Has(day) {
				names = append(names, a.Name)
			}
		}
		rows = append(rows, []string{day.String(), strconv.Itoa(len(names)), strings.Join(names, ", ")})
	}
	return rows
}
