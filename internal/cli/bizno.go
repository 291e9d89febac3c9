package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/senior-job-match/internal/bizno"
	"github.com/justsurfingit/senior-job-match/internal/common"
)

// BiznoCmd returns the bizno command
func BiznoCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bizno",
		Short: "Business registration number tools",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "verify [number...]",
		Short: "Check business numbers against the checksum",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, number := range args {
				if err := bizno.Verify(number); err != nil {
					invalid++
					env.printf("%s %s  %s\n", bad(), number, reason(err))
					continue
				}
				env.printf("%s %s\n", ok(), bizno.Format(number))
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d numbers are invalid", invalid, len(args))
			}
			return nil
		},
	})
	return cmd
}

func reason(err error) string {
	switch common.CodeOf(err) {
	case common.CodeInvalidLength:
		return "must have 10 digits"
	case common.CodeChecksumMismatch:
		return "checksum mismatch"
	default:
		return err.Error()
	}
}
