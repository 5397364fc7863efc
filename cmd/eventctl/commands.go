package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"eventdesk/internal/attendee/models"
	"eventdesk/internal/attendee/report"
	dErrors "eventdesk/pkg/domain-errors"
)

func (c *cli) importCmd() *cobra.Command {
	var skipCredentials bool
	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import attendees from a CSV with Name, Email, Phone and Role columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				if os.IsNotExist(err) {
					return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("File %s not found.", args[0]))
				}
				return fmt.Errorf("open roster: %w", err)
			}
			defer f.Close()

			res, err := c.desk.Manager.ImportCSV(cmd.Context(), f, !skipCredentials)
			if err != nil {
				return err
			}
			printImport(c.out, res, c.desk.Manager.CredentialDir(), !skipCredentials)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipCredentials, "no-credentials", false, "do not write credential files")
	return cmd
}

func (c *cli) registerCmd() *cobra.Command {
	var (
		row             models.ImportRow
		skipCredentials bool
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Add a single attendee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			row.Normalize()
			a, err := c.desk.Manager.Register(cmd.Context(), row, !skipCredentials)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, okStyle.Render("Registered "+a.Name))
			printAttendee(c.out, a)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&row.Name, "name", "", "full name")
	flags.StringVar(&row.Email, "email", "", "email address")
	flags.StringVar(&row.Phone, "phone", "", "phone number")
	flags.StringVar(&row.Role, "role", "", "role, Attendee when empty")
	flags.BoolVar(&skipCredentials, "no-credentials", false, "do not write a credential file")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (c *cli) checkInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-in <id>",
		Short: "Check an attendee in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.desk.Manager.CheckIn(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, okStyle.Render(res.Message))
			return nil
		},
	}
}

func (c *cli) lunchCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "lunch <id>",
		Short: "Record lunch for a checked-in attendee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var day *models.Date
			if date != "" {
				d, err := models.ParseDate(date)
				if err != nil {
					return dErrors.New(dErrors.CodeValidation, "date must be formatted as YYYY-MM-DD")
				}
				day = &d
			}
			res, err := c.desk.Manager.CollectLunch(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, okStyle.Render(res.Message))
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD (default today)")
	return cmd
}

func (c *cli) kitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kit <id>",
		Short: "Record kit collection for a checked-in attendee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.desk.Manager.CollectKit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, okStyle.Render(res.Message))
			return nil
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one attendee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.desk.Manager.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printAttendee(c.out, a)
			return nil
		},
	}
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every attendee in import order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printAttendees(c.out, c.desk.Manager.List(cmd.Context()))
			return nil
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find attendees by name, email, phone, role or identifier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printAttendees(c.out, c.desk.Manager.Search(cmd.Context(), strings.Join(args, " ")))
			return nil
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show check-in, kit and lunch totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printStats(c.out, c.desk.Manager.Stats(cmd.Context()))
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	var out string
	kinds := make([]string, len(report.Kinds))
	for i, k := range report.Kinds {
		kinds[i] = string(k)
	}
	cmd := &cobra.Command{
		Use:       "export [kind]",
		Short:     "Write a CSV report: " + strings.Join(kinds, ", "),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := report.KindFull
			if len(args) == 1 {
				kind = report.Kind(args[0])
			}
			path, err := c.desk.Manager.ExportReportFile(cmd.Context(), kind, out)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, okStyle.Render("Report exported to "+path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <data-dir>/<kind>_report_<timestamp>.csv)")
	return cmd
}

func (c *cli) backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the current snapshot to a timestamped manual backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := c.desk.Manager.ManualBackup(cmd.Context())
			if err != nil {
				return err
			}
			if path == "" {
				fmt.Fprintln(c.out, mutedStyle.Render("No data file exists to back up."))
				return nil
			}
			fmt.Fprintln(c.out, okStyle.Render("Manual backup created successfully: "+path))
			return nil
		},
	}
}
