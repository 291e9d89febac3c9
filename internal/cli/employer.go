package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/bizno"
	"github.com/justsurfingit/senior-job-match/internal/models"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

// EmployerCmd returns the employer command
func EmployerCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employer",
		Short: "Review employer accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List employers, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			svc, err := employerService(env)
			if err != nil {
				return err
			}
			employers, err := svc.List(newContext(), env.admin(), status)
			if err != nil {
				return fmt.Errorf("failed to list employers: %w", err)
			}
			if len(employers) == 0 {
				env.printf("No employers found.\n")
				return nil
			}

			w := tabwriter.NewWriter(env.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCOMPANY\tBUSINESS NO\tCONTACT\tSTATUS\tCREATED")
			fmt.Fprintln(w, "--\t-------\t-----------\t-------\t------\t-------")
			for _, e := range employers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID,
					e.CompanyName,
					bizno.Format(e.BusinessNumber),
					e.ContactName,
					statusLabel(string(e.Status)),
					e.CreatedAt.Format("2006-01-02"),
				)
			}
			return w.Flush()
		},
	}
	list.Flags().String("status", "pending", "Filter by status (pending|approved|rejected|all)")

	cmd.AddCommand(list)
	cmd.AddCommand(approvalCmd(env, "approve", models.EmployerApproved))
	cmd.AddCommand(approvalCmd(env, "reject", models.EmployerRejected))
	return cmd
}

func approvalCmd(env *Env, use string, status models.EmployerStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [employer-id]",
		Short: "Mark an employer " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid employer id %q", args[0])
			}
			svc, err := employerService(env)
			if err != nil {
				return err
			}
			employer, err := svc.SetApproval(newContext(), env.admin(), id, status)
			if err != nil {
				return fmt.Errorf("failed to %s employer: %w", use, err)
			}
			env.printf("%s %s is now %s\n", ok(), employer.CompanyName, statusLabel(string(employer.Status)))
			return nil
		},
	}
}

func employerService(env *Env) (*services.EmployerService, error) {
	store, err := env.store()
	if err != nil {
		return nil, err
	}
	return services.NewEmployerService(store, nil, env.Log), nil
}
