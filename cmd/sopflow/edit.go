package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sopflow/editor"
	"sopflow/export"
	"sopflow/flow"
	"sopflow/render"
	"sopflow/seed"
	"sopflow/terminal"
	"sopflow/viewport"
)

var editExportDir string

var editCmd = &cobra.Command{
	Use:   "edit [file.json]",
	Short: "Open a workflow in the interactive editor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var store *flow.Store
		var filename string
		if len(args) > 0 {
			filename = args[0]
			loaded, err := seed.LoadFile(filename)
			if err != nil {
				return err
			}
			store = loaded
		} else {
			store = seed.FromSteps(nil)
			store.SetTitle("Untitled workflow")
		}

		raster, err := render.NewRaster(render.Options{
			Width:    cfg.Canvas.Width,
			Height:   cfg.Canvas.Height,
			FontSize: cfg.Canvas.FontSize,
		})
		if err != nil {
			return fmt.Errorf("setting up renderer: %w", err)
		}

		ed := editor.New(store, viewport.New())
		exporter := export.NewExporter(raster)

		dir := editExportDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		return terminal.NewApp(ed, exporter, filename, dir).Run()
	},
}

func init() {
	editCmd.Flags().StringVar(&editExportDir, "export-dir", "", "directory for exported images (default from config)")
	rootCmd.AddCommand(editCmd)
}
