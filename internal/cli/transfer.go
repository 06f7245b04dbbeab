package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"zozikafe/internal/admin"
	"zozikafe/internal/domain/machines"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Append machines from a JSON export",
		Long: `Append machines from a JSON array, as written by "zozikafe export".

Legacy exports with "bg|en" strings for type and features are accepted.
Machines whose id already exists are skipped. Use "-" to read stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		raw []byte
		err error
	)
	if args[0] == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	var list []machines.Machine
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	ctrl := admin.New(cmd.Context(), records)
	added, err := ctrl.Import(cmd.Context(), list)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d machines.\n", added, len(list))
	return nil
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the inventory as JSON to stdout",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
}

func runExport(cmd *cobra.Command, _ []string) error {
	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(records.Load(cmd.Context()))
}
