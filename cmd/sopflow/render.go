package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sopflow/export"
	"sopflow/render"
	"sopflow/seed"
	"sopflow/viewport"
)

var renderDir string

var renderCmd = &cobra.Command{
	Use:   "render file.json",
	Short: "Export a workflow as a PNG flowchart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := seed.LoadFile(args[0])
		if err != nil {
			return err
		}

		raster, err := render.NewRaster(render.Options{
			Width:    cfg.Canvas.Width,
			Height:   cfg.Canvas.Height,
			FontSize: cfg.Canvas.FontSize,
		})
		if err != nil {
			return fmt.Errorf("setting up renderer: %w", err)
		}

		dir := renderDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		path, err := export.NewExporter(raster).PNG(store, viewport.New(), dir)
		if err != nil {
			return err
		}
		good.Printf("wrote %s\n", path)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderDir, "dir", "d", "", "output directory (default from config)")
	rootCmd.AddCommand(renderCmd)
}
