package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/export"
)

// ExportCmd returns the export command
func ExportCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export data as spreadsheets",
	}

	applications := &cobra.Command{
		Use:   "applications [job-id]",
		Short: "Write a job's applicants to an XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			out, _ := cmd.Flags().GetString("output")
			if out == "" {
				out = "applications-" + jobID.String() + ".xlsx"
			}
			store, err := env.store()
			if err != nil {
				return err
			}

			data, err := export.NewService(store, env.Log).ApplicationsXLSX(newContext(), jobID)
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			env.printf("%s wrote %s\n", ok(), out)
			return nil
		},
	}
	applications.Flags().StringP("output", "o", "", "Output file (default applications-<job-id>.xlsx)")

	cmd.AddCommand(applications)
	return cmd
}
