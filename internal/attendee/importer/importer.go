// Package importer turns header-driven CSV into import rows.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"eventdesk/internal/attendee/models"
)

const bom = "\ufeff"

// column positions resolved from the header; -1 when absent.
type columns struct {
	name, email, phone, role int
}

func resolve(header []string) columns {
	c := columns{name: -1, email: -1, phone: -1, role: -1}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			c.name = i
		case "email":
			c.email = i
		case "phone":
			c.phone = i
		case "role":
			c.role = i
		}
	}
	return c
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// Decode reads every data row. Rows keep blank fields so the caller can count
// them as invalid; a missing Name or Email column leaves those fields blank on
// every row rather than failing. Role defaulting is left to the caller.
func Decode(r io.Reader) ([]models.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := resolve(header)

	var rows []models.ImportRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if blank(record) {
			continue
		}
		rows = append(rows, models.ImportRow{
			Name:  field(record, cols.name),
			Email: field(record, cols.email),
			Phone: field(record, cols.phone),
			Role:  field(record, cols.role),
		})
	}
	return rows, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
