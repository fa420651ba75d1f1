package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checkjobs",
		Short:         "Checkjobs summarises GitHub Actions job statuses",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	persistent := cmd.PersistentFlags()
	persistent.Bool("include-status-jobs", false, "include umbrella Status jobs in the report")
	persistent.StringArray("ignore", nil, "job name to exclude from the report (repeatable)")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newNotifyCmd())

	return cmd
}
