// Command chartpng renders CSV or Excel data to a PNG chart.
//
//	chartpng render data.xlsx --kind line --sheet Power --out power.png
//	chartpng render shares.csv --kind pie --theme dark.json
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	charts "github.com/NT-Technologies/NTComponents.Charts-sub001"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "chartpng",
		Short: "Render tabular data to PNG charts",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				charts.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log frame stats and registry changes to stderr")
	root.AddCommand(newRenderCmd())
	return root
}

// renderOptions holds the flags of the render command.
type renderOptions struct {
	kind   string
	sheet  string
	out    string
	width  int
	height int
	scale  float64
	theme  string
	view   string
	legend string
	title  string
}

func newRenderCmd() *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render <input.csv|input.xlsx>",
		Short: "Render a chart from a CSV file or Excel sheet",
		Long: `Render reads a table whose first row is a header. Line, scatter and bar
charts use the first column as X and every other column as a series. Pie and
donut charts read label and value columns; treemaps read label and value, or
group, label and value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := render(args[0], o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", o.out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.kind, "kind", "k", "line", "Chart kind: line, scatter, bar, pie, donut, treemap")
	f.StringVar(&o.sheet, "sheet", "", "Sheet to read from an Excel file (default: first sheet)")
	f.StringVarP(&o.out, "out", "o", "chart.png", "Output PNG path")
	f.IntVar(&o.width, "width", 800, "Width in logical pixels")
	f.IntVar(&o.height, "height", 500, "Height in logical pixels")
	f.Float64Var(&o.scale, "scale", 1, "Device pixel ratio")
	f.StringVar(&o.theme, "theme", "", "Theme JSON file")
	f.StringVar(&o.view, "view", "", "View snapshot JSON to restore before rendering")
	f.StringVar(&o.legend, "legend", "bottom", "Legend side: left, bottom, right, top or none")
	f.StringVar(&o.title, "title", "", "Y axis title")
	return cmd
}
