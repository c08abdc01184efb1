package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"archview/internal/config"
	"archview/internal/history"
)

var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print a stored diagram",
	Long: `Print the Mermaid diagram recorded for a past run. The id may be any
unambiguous prefix of the full run id (see 'archview history').`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	diagram, err := store.Diagram(args[0])
	if err != nil {
		return err
	}

	fmt.Print(diagram)
	return nil
}
