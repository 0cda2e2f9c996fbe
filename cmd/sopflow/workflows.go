package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sopflow/seed"
	"sopflow/storage"
)

var workflowsCmd = &cobra.Command{
	Use:   "workflows",
	Short: "Manage workflows in the local database",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List workflows in the local database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		workflows, err := db.ListWorkflows()
		if err != nil {
			return err
		}
		for _, w := range workflows {
			fmt.Printf("%-36s  %s\n", w.ID, w.Title)
		}
		return nil
	},
}

var pushCmd = &cobra.Command{
	Use:   "push id file.json",
	Short: "Save a workflow file to the local database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := seed.LoadFile(args[1])
		if err != nil {
			return err
		}

		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SaveWorkflow(args[0], store.Title(), seed.Steps(store)); err != nil {
			return err
		}
		good.Printf("saved %s (%d steps)\n", args[0], store.NodeCount())
		return nil
	},
}

var pullCmd = &cobra.Command{
	Use:   "pull id file.json",
	Short: "Write a stored workflow out as a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		title, steps, err := db.LoadWorkflow(args[0])
		if err != nil {
			return err
		}

		store := seed.FromSteps(steps)
		store.SetTitle(title)
		if err := seed.SaveFile(args[1], store); err != nil {
			return err
		}
		good.Printf("wrote %s\n", args[1])
		return nil
	},
}

func init() {
	workflowsCmd.AddCommand(listCmd, pushCmd, pullCmd)
	rootCmd.AddCommand(workflowsCmd)
}
