package cli

import (
	"fmt"
	"os"

	"github.com/boxity/boxity/internal/qr"
	"github.com/spf13/cobra"
)

var (
	qrOut  string
	qrTest bool
)

func init() {
	RootCmd.AddCommand(qrCmd)
	qrCmd.Flags().StringVar(&qrOut, "out", "", "output file, boxity-<id>.png when empty")
	qrCmd.Flags().BoolVar(&qrTest, "test", false, "write the sample payload code instead")
}

var qrCmd = &cobra.Command{
	Use:   "qr [batch id]",
	Short: "Write the QR code of a batch as PNG",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var content, out string
		size := conf.QR.BatchSize

		if qrTest {
			content, out, size = qr.EncodePayload(qr.SamplePayload), "boxity-test-qr.png", conf.QR.TestSize
		} else {
			if len(args) == 0 {
				return fmt.Errorf("batch id is required unless --test is given")
			}
			service, closer, err := openService()
			if err != nil {
				return err
			}
			defer closer.Close()

			batch, _, err := service.GetBatch(ctx, args[0])
			if err != nil {
				return err
			}
			content, out = batch.ID, fmt.Sprintf("boxity-%s.png", batch.ID)
		}
		if qrOut != "" {
			out = qrOut
		}

		png, err := qr.PNG(content, size)
		if err != nil {
			return
		}
		err = os.WriteFile(out, png, 0644)
		if err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "QR code written to %s\n", out)
		return nil
	},
}
