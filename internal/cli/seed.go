package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"zozikafe/internal/admin"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the sample machines when the inventory is empty",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	ctrl := admin.New(ctx, records)
	seeded, err := ctrl.SeedIfEmpty(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if !seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Inventory is not empty; nothing to seed.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d machines.\n", ctrl.Summary().Total)
	return nil
}
