package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"eventdesk/internal/attendee/store"
	dErrors "eventdesk/pkg/domain-errors"
)

const roster = "Name,Email,Phone,Role\n" +
	"Ann Lee,ann@example.com,555-0100,Speaker\n" +
	"Bo Chen,bo@example.com,,\n" +
	",missing@example.com,,\n"

type CLISuite struct {
	suite.Suite
	dir string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.T().Setenv("EVENTDESK_STORE", "file")
	s.T().Setenv("EVENTDESK_CREDENTIAL_DIR", "")
}

func (s *CLISuite) SetupSubTest() {
	s.SetupTest()
}

// run executes one eventctl invocation against the suite's data directory.
func (s *CLISuite) run(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	args = append([]string{"--data-dir", s.dir, "--credentials", "token"}, args...)
	err := execute(context.Background(), args, &out, &errOut)
	return out.String(), err
}

func (s *CLISuite) importRoster() {
	path := filepath.Join(s.T().TempDir(), "roster.csv")
	s.Require().NoError(os.WriteFile(path, []byte(roster), 0o644))
	out, err := s.run("import", path)
	s.Require().NoError(err)
	s.Contains(out, "Successfully imported 2 attendees.")
	s.Contains(out, "1 incomplete rows of 3")
}

// ids returns identifiers from the saved snapshot in import order.
func (s *CLISuite) ids() []string {
	reg, err := store.NewFileStore(s.dir).Load(context.Background())
	s.Require().NoError(err)
	var ids []string
	for _, a := range reg.All() {
		ids = append(ids, a.Identifier)
	}
	return ids
}

func (s *CLISuite) TestImport() {
	s.Run("writes snapshot and credentials", func() {
		s.importRoster()

		ids := s.ids()
		s.Len(ids, 2)
		s.FileExists(filepath.Join(s.dir, "generated_ids", "ann@example.com.txt"))
		s.FileExists(filepath.Join(s.dir, "audit.jsonl"))
	})

	s.Run("missing file", func() {
		_, err := s.run("import", filepath.Join(s.dir, "nope.csv"))
		s.Require().Error(err)
		s.Equal("File "+filepath.Join(s.dir, "nope.csv")+" not found.", describe(err))
	})
}

func (s *CLISuite) TestDeskFlow() {
	s.importRoster()
	ann := s.ids()[0]
	bo := s.ids()[1]

	out, err := s.run("lunch", ann)
	s.Require().Error(err)
	s.Equal("Attendee Ann Lee has not checked in yet", describe(err))
	s.Empty(out)

	out, err = s.run("check-in", ann)
	s.Require().NoError(err)
	s.Contains(out, "Successfully checked in Ann Lee")

	_, err = s.run("check-in", ann)
	s.True(dErrors.Is(err, dErrors.CodeAlreadyDone))
	s.Equal("Attendee Ann Lee already checked in", describe(err))

	out, err = s.run("lunch", ann, "--date", "2024-05-01")
	s.Require().NoError(err)
	s.Contains(out, "Successfully marked lunch collected for Ann Lee")

	_, err = s.run("lunch", ann, "--date", "2024-05-01")
	s.Equal("Attendee Ann Lee already collected lunch for 2024-05-01", describe(err))

	_, err = s.run("lunch", ann, "--date", "May 1st")
	s.True(dErrors.Is(err, dErrors.CodeValidation))

	out, err = s.run("kit", ann)
	s.Require().NoError(err)
	s.Contains(out, "Successfully marked kit collected for Ann Lee")

	_, err = s.run("kit", bo)
	s.True(dErrors.Is(err, dErrors.CodeNotRegistered))

	out, err = s.run("show", ann)
	s.Require().NoError(err)
	s.Contains(out, "ann@example.com")
	s.Contains(out, "2024-05-01")

	out, err = s.run("stats")
	s.Require().NoError(err)
	s.Contains(out, "Event Statistics")
	s.Contains(out, "1 (50.0%)")
	s.Contains(out, "1 total, 1 checked in (100.0%)")
	s.Contains(out, "1 attendees")
}

func (s *CLISuite) TestSearchAndList() {
	s.importRoster()

	out, err := s.run("search", "speaker")
	s.Require().NoError(err)
	s.Contains(out, "Found 1 attendees:")
	s.Contains(out, "Ann Lee")
	s.NotContains(out, "Bo Chen")

	out, err = s.run("search", "nobody")
	s.Require().NoError(err)
	s.Contains(out, "No attendees found matching your search.")

	out, err = s.run("list")
	s.Require().NoError(err)
	s.Contains(out, "Found 2 attendees:")
}

func (s *CLISuite) TestRegister() {
	out, err := s.run("register", "--name", "Cy Dee", "--email", "CY@example.com")
	s.Require().NoError(err)
	s.Contains(out, "Registered Cy Dee")
	s.Contains(out, "cy@example.com")

	_, err = s.run("register", "--name", "Cy Again", "--email", "cy@example.com")
	s.True(dErrors.Is(err, dErrors.CodeDuplicateEmail))

	_, err = s.run("register", "--name", "No Email")
	s.Require().Error(err)
}

func (s *CLISuite) TestExportAndBackup() {
	s.Run("backup with nothing saved", func() {
		out, err := s.run("backup")
		s.Require().NoError(err)
		s.Contains(out, "No data file exists to back up.")
	})

	s.Run("export and backup after import", func() {
		s.importRoster()

		target := filepath.Join(s.dir, "out", "kit.csv")
		out, err := s.run("export", "kit", "--out", target)
		s.Require().NoError(err)
		s.Contains(out, "Report exported to "+target)
		s.FileExists(target)

		out, err = s.run("export")
		s.Require().NoError(err)
		s.Contains(out, filepath.Join(s.dir, "full_report_"))

		_, err = s.run("export", "badges")
		s.True(dErrors.Is(err, dErrors.CodeBadRequest))

		out, err = s.run("backup")
		s.Require().NoError(err)
		s.Contains(out, "Manual backup created successfully: "+filepath.Join(s.dir, "manual_backup_"))
	})
}
