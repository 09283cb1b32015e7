package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/koscheiundead/totkaa-v2/internal/database/migrations"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Inspect the storage schema",
	}
	cmd.AddCommand(newMigrateStatusCmd(flags))
	return cmd
}

func newMigrateStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List migrations and when they were applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening a session already migrates to the latest version
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				m, err := migrations.NewMigrator(s.storage.DB, s.catalog)
				if err != nil {
					return err
				}
				statuses, err := m.Status(ctx)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "VERSION\tSOURCE\tSTATE\tAPPLIED")
				for _, st := range statuses {
					applied := "-"
					if st.State == goose.StateApplied {
						applied = st.AppliedAt.Local().Format(time.DateTime)
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", st.Source.Version, sourceName(st.Source), st.State, applied)
				}
				return tw.Flush()
			})
		},
	}
}

func sourceName(src *goose.Source) string {
	if src.Path != "" {
		return src.Path
	}
	return fmt.Sprintf("go:%d", src.Version)
}
