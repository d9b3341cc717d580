package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <text>",
	Short: "Interpret the text of a scanned QR code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		res, err := service.Scan(ctx, joinArgs(args))
		if err != nil {
			return
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, res.Message)
		for _, w := range res.Warnings {
			fmt.Fprintln(out, "warning:", w)
		}
		return printJSON(out, res.Fields)
	},
}
