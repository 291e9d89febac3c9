package cli

import (
	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/database"
)

// RootCmd builds the seniorctl command tree over env.
func RootCmd(env *Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "seniorctl",
		Short: "Administration tool for the senior job matching service",
		Long: `seniorctl runs the administrator's back-office tasks: schema migration,
business number checks, employer approval, worker matching, notification
dispatch and roster export.`,
		SilenceUsage: true,
	}
	root.AddCommand(MigrateCmd(env))
	root.AddCommand(BiznoCmd(env))
	root.AddCommand(EmployerCmd(env))
	root.AddCommand(MatchCmd(env))
	root.AddCommand(NotifyCmd(env))
	root.AddCommand(ExportCmd(env))
	return root
}

// MigrateCmd returns the migrate command
func MigrateCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := env.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, env.Log); err != nil {
				return err
			}
			env.printf("%s schema is up to date\n", ok())
			return nil
		},
	}
}
