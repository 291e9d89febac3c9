package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/services"
)

// MatchCmd returns the match command
func MatchCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match [job-id]",
		Short: "List active workers whose desired job types include the job's category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			exclude, _ := cmd.Flags().GetBool("exclude-existing")
			store, err := env.store()
			if err != nil {
				return err
			}

			workers, err := services.NewMatcherService(store, env.Log).MatchForJob(newContext(), jobID, services.MatchOptions{ExcludeExisting: exclude})
			if err != nil {
				return fmt.Errorf("failed to match job: %w", err)
			}
			if len(workers) == 0 {
				env.printf("No matching workers.\n")
				return nil
			}

			w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tJOB TYPES")
			fmt.Fprintln(w, "--\t----\t-----\t---------")
			for _, worker := range workers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", worker.ID, worker.Name, worker.Phone, strings.Join(worker.JobTypes, ","))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			env.printf("%d matching workers\n", len(workers))
			return nil
		},
	}
	cmd.Flags().Bool("exclude-existing", false, "Skip workers who already applied or were recommended")
	return cmd
}
