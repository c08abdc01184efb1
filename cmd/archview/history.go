package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archview/internal/config"
	"archview/internal/history"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `List recent diagram generation runs from the history store.

Examples:
  archview history
  archview history --limit 5 --format json`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().StringVar(&historyFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(historyCmd)
}

// HistoryResponseCLI lists recorded runs.
type HistoryResponseCLI struct {
	Runs []history.Run `json:"runs"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	root := mustGetProjectRoot()
	dir := stateDir(root)

	cfg, err := config.LoadConfigFrom(dir)
	if err != nil {
		return err
	}

	store, err := history.Open(dir, newLoggerFor(cfg))
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(historyLimit)
	if err != nil {
		return err
	}

	output, err := FormatResponse(&HistoryResponseCLI{Runs: runs}, OutputFormat(historyFormat))
	if err != nil {
		return err
	}
	fmt.Println(output)
	return nil
}
