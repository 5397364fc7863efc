package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"eventdesk/internal/attendee/models"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	labelStyle = lipgloss.NewStyle().Width(20).Foreground(lipgloss.Color("245"))
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func lunchList(a *models.Attendee) string {
	if len(a.LunchCollected) == 0 {
		return "None"
	}
	return strings.Join(a.LunchCollected.Strings(), ", ")
}

func field(w io.Writer, label, value string) {
	fmt.Fprintln(w, labelStyle.Render(label)+value)
}

func printAttendee(w io.Writer, a *models.Attendee) {
	fmt.Fprintln(w, titleStyle.Render(a.Name))
	field(w, "Identifier", a.Identifier)
	field(w, "Email", a.Email)
	if a.Phone != "" {
		field(w, "Phone", a.Phone)
	}
	field(w, "Role", a.Role)
	checkedIn := yesNo(a.Registered)
	if a.RegistrationTime != nil {
		checkedIn += mutedStyle.Render(" at " + a.RegistrationTime.Format("2006-01-02 15:04:05"))
	}
	field(w, "Checked in", checkedIn)
	field(w, "Lunch", lunchList(a))
	field(w, "Kit collected", yesNo(a.KitCollected))
}

// printAttendees renders the search result grid.
func printAttendees(w io.Writer, attendees []*models.Attendee) {
	if len(attendees) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No attendees found matching your search."))
		return
	}
	fmt.Fprintf(w, "Found %d attendees:\n", len(attendees))

	rows := make([][]string, 0, len(attendees))
	for _, a := range attendees {
		rows = append(rows, []string{
			a.Identifier,
			a.Name,
			a.Email,
			a.Role,
			yesNo(a.Registered),
			lunchList(a),
			yesNo(a.KitCollected),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("ID", "Name", "Email", "Role", "Checked In", "Lunch Dates", "Kit Collected").
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

func printStats(w io.Writer, s models.Stats) {
	fmt.Fprintln(w, titleStyle.Render("Event Statistics"))
	field(w, "Total Attendees", fmt.Sprint(s.Total))
	field(w, "Checked In", fmt.Sprintf("%d (%.1f%%)", s.CheckedIn, s.CheckInPercentage))
	field(w, "Kits Distributed", fmt.Sprintf("%d (%.1f%%)", s.KitsCollected, s.KitPercentage))

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Attendees by Role"))
	for _, role := range s.Roles() {
		field(w, "  "+role, fmt.Sprintf("%d total, %d checked in (%.1f%%)",
			s.RoleTotals[role], s.RoleCheckedIn[role], s.RolePercentage(role)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Lunch Distribution by Date"))
	dates := s.LunchDates()
	if len(dates) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  none yet"))
	}
	for _, d := range dates {
		field(w, "  "+d, fmt.Sprintf("%d attendees", s.LunchByDate[d]))
	}
}

func printImport(w io.Writer, res *models.ImportResult, credentialDir string, emitted bool) {
	fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("Successfully imported %d attendees.", res.Imported)))
	if res.Skipped > 0 || res.Invalid > 0 {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Skipped %d existing and %d incomplete rows of %d.",
			res.Skipped, res.Invalid, res.Total)))
	}
	if emitted && res.Imported > 0 {
		fmt.Fprintf(w, "ID files generated in %s\n", credentialDir)
	}
}
