package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/boxity/boxity/internal/models"
	"github.com/spf13/cobra"
)

var asJSON bool

func init() {
	RootCmd.AddCommand(batchesCmd, verifyCmd)
	for _, cmd := range []*cobra.Command{batchesCmd, verifyCmd} {
		cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	}
}

var batchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List local batches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		batches := service.ListBatches(ctx)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), batches)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRODUCT\tORIGIN\tCREATED\tEVENTS")
		for _, b := range batches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", b.ID, b.ProductName, b.Origin, b.CreatedAt, len(b.Events))
		}
		return w.Flush()
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <batch id>",
	Short: "Show a batch and its custody timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		service, closer, err := openService()
		if err != nil {
			return
		}
		defer closer.Close()

		batch, source, err := service.GetBatch(ctx, args[0])
		if err != nil {
			return
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), batch)
		}
		printTimeline(cmd.OutOrStdout(), batch, source)
		return nil
	},
}

func printTimeline(out io.Writer, b models.Batch, source string) {
	fmt.Fprintf(out, "%s  %s (%s)\n", b.ID, b.ProductName, source)
	if b.SKU != "" {
		fmt.Fprintf(out, "SKU:     %s\n", b.SKU)
	}
	fmt.Fprintf(out, "Origin:  %s\n", b.Origin)
	fmt.Fprintf(out, "Created: %s\n", b.CreatedAt)
	fmt.Fprintf(out, "Events:  %d\n", len(b.Events))
	for _, e := range b.Events {
		fmt.Fprintf(out, "\n  %s  %s (%s)\n", e.Timestamp, e.Actor, e.Role)
		fmt.Fprintf(out, "    %s\n", e.Note)
		fmt.Fprintf(out, "    hash %s\n", e.Hash)
		fmt.Fprintf(out, "    ref  %s\n", e.LedgerRef)
	}
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
