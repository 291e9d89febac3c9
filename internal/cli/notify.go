package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/notify"
	"github.com/justsurfingit/senior-job-match/internal/services"
)

// NotifyCmd returns the notify command
func NotifyCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Work with staged worker notifications",
	}

	dispatch := &cobra.Command{
		Use:   "dispatch",
		Short: "Offer pending notifications to the configured sender",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			store, err := env.store()
			if err != nil {
				return err
			}
			svc := services.NewNotificationService(store, notify.NewLogSender(env.Log), env.Log)
			report, err := svc.Dispatch(newContext(), limit)
			if err != nil {
				return fmt.Errorf("dispatch stopped: %w", err)
			}
			env.printf("sent %s  failed %s  pending %s\n",
				color.New(color.FgGreen).Sprint(report.Sent),
				color.New(color.FgRed).Sprint(report.Failed),
				color.New(color.FgYellow).Sprint(report.Pending),
			)
			return nil
		},
	}
	dispatch.Flags().Int("limit", 100, "Maximum notifications to process")

	cmd.AddCommand(dispatch)
	return cmd
}
