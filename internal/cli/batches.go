// internal/cli/batches.go
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/core/domain"
	"github.com/ammerola/retifica-be/internal/export"
)

// NewBatchesCommand creates the batches command group.
func NewBatchesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Inspect batches",
	}
	cmd.AddCommand(newBatchesListCommand(opts))
	return cmd
}

func newBatchesListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List batches with engine counts and costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := opts.OpenStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer release()

			summaries := store.BatchSummaries()
			if opts.Format == "json" {
				if summaries == nil {
					summaries = []domain.BatchSummary{}
				}
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			if len(summaries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nenhum lote cadastrado")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tLOTE\tFECHAMENTO\tMOTORES\tTOTAL (R$)\tMÉDIA (R$)")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
					s.ID, s.Name, s.ClosureDate.FormatBR(), s.EngineCount,
					export.FormatMoney(s.TotalCost), export.FormatMoney(s.AverageCost))
			}
			return tw.Flush()
		},
	}
}
