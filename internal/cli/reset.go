package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard local changes and restore the demo batches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		err = service.ResetDemo(ctx)
		if err != nil {
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Demo data reset")
		return nil
	},
}
