package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emedina/horas/internal/config"
	"github.com/emedina/horas/internal/sheets"
	"github.com/emedina/horas/internal/store"
	"github.com/emedina/horas/internal/submit"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:   "rm <record-id>",
	Short: "Delete a record from the sheet and the local copy",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rmCmd.Flags().BoolVar(&rmYes, "yes", false, "Skip the confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	id := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	path, err := store.DefaultPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	st := store.New(path)

	if !rmYes && !confirm(fmt.Sprintf("Delete record %s? [y/N] ", id)) {
		fmt.Println("Aborted.")
		return nil
	}

	client := sheets.NewClient(cfg.Sheet.ScriptURL, sheets.ParseMode(cfg.Sheet.Mode))
	coordinator := submit.New(st, client)

	if err := coordinator.Delete(context.Background(), id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Deleted record %s\n", id)
	return nil
}

// confirm prints a prompt and reads a yes/no answer from stdin.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
