package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"eventdesk/internal/app"
	"eventdesk/internal/platform/config"
	"eventdesk/internal/platform/logger"
	dErrors "eventdesk/pkg/domain-errors"
)

// cli holds flag values and the desk opened for the running command.
type cli struct {
	out     io.Writer
	dataDir string
	creds   string
	verbose bool

	desk *app.App
}

// execute builds a fresh command tree, runs args against it and releases
// the desk afterwards whether or not the command failed.
func execute(ctx context.Context, args []string, out, errOut io.Writer) error {
	c := &cli{out: out}
	root := c.rootCmd()
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	defer func() {
		if c.desk != nil {
			_ = c.desk.Close()
		}
	}()
	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "eventctl",
		Short:             "Track attendee check-in, lunch and kit collection",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.open,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.dataDir, "data-dir", "", "directory holding the snapshot, backups and reports (default $EVENTDESK_DATA_DIR or event_data)")
	flags.StringVar(&c.creds, "credentials", "", "credential kind for new attendees: token or qr (default $EVENTDESK_CREDENTIAL_KIND or qr)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		c.importCmd(),
		c.registerCmd(),
		c.checkInCmd(),
		c.lunchCmd(),
		c.kitCmd(),
		c.showCmd(),
		c.listCmd(),
		c.searchCmd(),
		c.statsCmd(),
		c.exportCmd(),
		c.backupCmd(),
	)
	return root
}

// open loads configuration from the environment, applies flag overrides and
// loads the registry.
func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	if c.creds != "" {
		cfg.CredentialKind = c.creds
	}

	level := "warn"
	if c.verbose {
		level = "info"
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr(), level, "text")

	c.desk, err = app.Build(cmd.Context(), cfg, log)
	return err
}

// describe turns err into the line shown to the operator. Expected outcomes
// print their message alone; faults keep the full chain.
func describe(err error) string {
	if dErrors.IsFault(err) {
		return "Error: " + err.Error()
	}
	return dErrors.Message(err)
}
