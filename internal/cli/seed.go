// internal/cli/seed.go
package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/ammerola/retifica-be/internal/core/domain"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Batches int
	Engines int // per batch
	Seed    uint64
}

var (
	seedModels = []string{
		"Gol 1.6", "Palio 1.0", "Uno 1.0", "Corsa 1.4", "Celta 1.0",
		"Fiesta 1.6", "Onix 1.4", "HB20 1.0", "Strada 1.4", "Saveiro 1.6",
	}
	seedOperators = []string{"Carlos", "Rita", "João", "Marcos", "Ana"}
	seedParts     = []string{"Bomba de óleo", "Junta do cárter", "Tensor da correia", "Bomba d'água"}
	seedMonths    = []string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
)

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo batches and engines",
		Long: `Insert demo batches and engines through the store, so the data lands in
the remote database when online and in the local cache otherwise.

Batches close on the last day of consecutive past months. The same --seed
always produces the same records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Batches, "batches", 3, "number of batches")
	cmd.Flags().IntVar(&opts.Engines, "engines", 5, "engines per batch")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 1, "random seed")
	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	if opts.Batches < 1 || opts.Engines < 0 {
		return WrapExitError(ExitCommandError, "invalid counts",
			fmt.Errorf("--batches must be positive and --engines not negative"))
	}

	ctx := cmd.Context()
	store, release, err := opts.OpenStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer release()

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	types := store.Catalog().Types()
	now := time.Now()

	engines := 0
	for i := opts.Batches; i >= 1; i-- {
		// day 0 of the following month is the last day of the target month
		closure := time.Date(now.Year(), now.Month()-time.Month(i)+1, 0, 0, 0, 0, 0, time.UTC)
		name := fmt.Sprintf("Lote %s/%d", seedMonths[closure.Month()-1], closure.Year())

		batch, err := store.AddBatch(ctx, name, closure.Format("2006-01-02"))
		if err != nil {
			return fmt.Errorf("failed to add batch %q: %w", name, err)
		}

		for j := 0; j < opts.Engines; j++ {
			input := domain.NewEngine{
				VehicleModel: seedModels[rng.IntN(len(seedModels))],
				EngineNumber: fmt.Sprintf("%c%c-%05d", 'A'+rng.IntN(26), 'A'+rng.IntN(26), rng.IntN(100000)),
				Operator:     seedOperators[rng.IntN(len(seedOperators))],
				BatchID:      batch.ID,
				Services:     seedServices(rng, types),
			}
			if _, err := store.AddEngine(ctx, input); err != nil {
				return fmt.Errorf("failed to add engine to %q: %w", name, err)
			}
			engines++
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d lotes e %d motores criados (modo %s)\n", opts.Batches, engines, store.Mode())
	return nil
}

func seedServices(rng *rand.Rand, types []domain.ServiceType) []domain.ServiceInput {
	n := min(1+rng.IntN(3), len(types))
	services := make([]domain.ServiceInput, 0, n)
	for _, i := range rng.Perm(len(types))[:n] {
		s := domain.ServiceInput{
			Type:   string(types[i]),
			Amount: fmt.Sprintf("%d,%02d", 50+rng.IntN(1450), rng.IntN(100)),
		}
		if types[i] == domain.ServiceAdditionalParts {
			s.PartName = seedParts[rng.IntN(len(seedParts))]
		}
		services = append(services, s)
	}
	return services
}
