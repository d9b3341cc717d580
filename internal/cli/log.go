package cli

import (
	"fmt"
	"strings"

	"github.com/boxity/boxity/internal/models"
	"github.com/boxity/boxity/internal/provenance"
	"github.com/spf13/cobra"
)

var eventInput provenance.EventInput

func init() {
	RootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&eventInput.Actor, "actor", "", "who handled the batch")
	logCmd.Flags().StringVar(&eventInput.Role, "role", "", "one of "+strings.Join(models.Roles, ", "))
	logCmd.Flags().StringVar(&eventInput.Note, "note", "", "what happened")
	logCmd.Flags().StringVar(&eventInput.Image, "image", "", "photo path or URL")
}

var logCmd = &cobra.Command{
	Use:   "log <batch id>",
	Short: "Append a custody event to a local batch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		event, err := service.LogEvent(ctx, args[0], eventInput)
		if err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged %s at %s\nhash %s\nref  %s\n", event.ID, event.Timestamp, event.Hash, event.LedgerRef)
		return nil
	},
}
