package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"zozikafe/internal/admin"
	"zozikafe/internal/domain/lang"
	"zozikafe/internal/domain/machines"
)

var (
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	soldStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
)

func newMachinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "machines",
		Short: "Inspect and change the inventory",
	}
	cmd.AddCommand(newMachinesListCmd(), newMachinesToggleCmd(), newMachinesDeleteCmd())
	return cmd
}

func newMachinesListCmd() *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List machines with summary counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, ok := lang.Parse(code)
			if !ok {
				return fmt.Errorf("unsupported language %q", code)
			}
			return runMachinesList(cmd, l)
		},
	}
	cmd.Flags().StringVar(&code, "lang", string(lang.Primary), "Display language (bg or en)")
	return cmd
}

func runMachinesList(cmd *cobra.Command, code lang.Code) error {
	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	ctrl := admin.New(cmd.Context(), records)
	out := cmd.OutOrStdout()
	s := ctrl.Summary()

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("MACHINES (%d total, %d available, %d sold)", s.Total, s.Available, s.Sold)))
	fmt.Fprintln(out, "──────────────────────────────────────────────────")
	for _, m := range ctrl.Machines() {
		status := availableStyle.Render(string(m.Status))
		if m.Status != machines.StatusAvailable {
			status = soldStyle.Render(string(m.Status))
		}
		fmt.Fprintf(out, "%-14d %-10s %s (%s)\n", m.ID, status, m.Name, m.Type.Pick(code))
		for _, f := range m.Features {
			fmt.Fprintf(out, "    - %s\n", f.Pick(code))
		}
	}
	return nil
}

func newMachinesToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Flip a machine between available and sold",
		Args:  cobra.ExactArgs(1),
		RunE:  runMachinesToggle,
	}
}

func runMachinesToggle(cmd *cobra.Command, args []string) error {
	id, err := parseMachineID(args[0])
	if err != nil {
		return err
	}
	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	ctrl := admin.New(cmd.Context(), records)
	m, note, err := ctrl.ToggleStatus(cmd.Context(), id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%d: %s)\n", note.Message.Pick(lang.Secondary), m.ID, m.Status)
	return nil
}

func newMachinesDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a machine after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMachinesDelete(cmd, args, yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

func runMachinesDelete(cmd *cobra.Command, args []string, yes bool) error {
	id, err := parseMachineID(args[0])
	if err != nil {
		return err
	}
	_, kvs, records, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = kvs.Close() }()

	var confirm admin.Confirmer = admin.Always
	if !yes {
		confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	ctrl := admin.New(cmd.Context(), records)
	note, err := ctrl.Delete(cmd.Context(), id, confirm)
	if err != nil && !errors.Is(err, admin.ErrCancelled) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), note.Message.Pick(lang.Secondary))
	return nil
}

// promptConfirmer asks on out and reads a y/N answer from in.
func promptConfirmer(in io.Reader, out io.Writer) admin.Confirmer {
	return admin.ConfirmFunc(func(prompt machines.Bilingual) bool {
		fmt.Fprintf(out, "%s [y/N]: ", prompt.Pick(lang.Secondary))
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	})
}

func parseMachineID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid machine id %q", s)
	}
	return id, nil
}
