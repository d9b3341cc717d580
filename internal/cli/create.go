package cli

import (
	"fmt"

	"github.com/boxity/boxity/internal/provenance"
	"github.com/spf13/cobra"
)

var batchInput provenance.BatchInput

func init() {
	RootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&batchInput.ProductName, "product", "", "product name (required)")
	createCmd.Flags().StringVar(&batchInput.ID, "id", "", "batch id, generated when empty")
	createCmd.Flags().StringVar(&batchInput.SKU, "sku", "", "stock keeping unit")
	createCmd.Flags().StringVar(&batchInput.Origin, "origin", "", "origin, defaults to "+provenance.DefaultOrigin)
	createCmd.Flags().StringVar(&batchInput.BaselineImage, "image", "", "baseline image path or URL")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new batch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		batch, err := service.CreateBatch(ctx, batchInput)
		if err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created batch %s (%s)\n", batch.ID, batch.ProductName)
		return nil
	},
}
