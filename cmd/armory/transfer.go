package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koscheiundead/totkaa-v2/internal/bridge"
)

func newExportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the player state to a JSON file",
		Long:  "export writes the pretty-printed state to path. A directory receives " + bridge.DefaultFileName + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				result, err := s.bridge.ExportToFile(ctx, bridge.NewStaticDialog(args[0]))
				if err != nil {
					return err
				}
				if flags.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				if result.Canceled {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing exported")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", result.FilePath)
				return nil
			})
		},
	}
}

func newImportCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace the player state with a JSON file",
		Long:  "import validates the file first; the stored state is left untouched when it is rejected.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, flags, func(ctx context.Context, s *session) error {
				result, err := s.bridge.ImportFromFile(ctx, bridge.NewStaticDialog(args[0]))
				if err != nil {
					return err
				}
				if flags.jsonOutput {
					return writeJSON(cmd.OutOrStdout(), result)
				}
				if result.Canceled {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing imported")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n\n", result.FilePath)
				return printState(cmd.OutOrStdout(), s.catalog, *result.State, false)
			})
		},
	}
}
