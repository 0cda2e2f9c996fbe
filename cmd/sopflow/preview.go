package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sopflow/preview"
	"sopflow/seed"
)

var previewCmd = &cobra.Command{
	Use:   "preview file.json",
	Short: "Print the compact summary of a workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := seed.LoadFile(args[0], seed.ReadOnly())
		if err != nil {
			return err
		}
		p := preview.New(store)
		fmt.Printf("%s\n\n%s", store.Title(), p.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
