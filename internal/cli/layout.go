package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StandPlan/internal/editor"
	"github.com/piwi3910/StandPlan/internal/engine"
	"github.com/piwi3910/StandPlan/internal/export"
	"github.com/piwi3910/StandPlan/internal/importer"
	"github.com/piwi3910/StandPlan/internal/model"
	"github.com/piwi3910/StandPlan/internal/project"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <layout>",
		Short: "Validate a layout and print pavilion occupancy",
		Long: `Check loads a layout file, prints one occupancy line per pavilion and lists
every object that lies outside its pavilion, refers to a missing pavilion or
overlaps another object. The command fails when any violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			writeSummary(out, l)

			violations := engine.Validate(l)
			for _, v := range violations {
				fmt.Fprintf(out, "  ! %s\n", v)
			}
			if len(violations) > 0 {
				logger.Error("layout check failed", "violations", len(violations))
				return ErrInvalidLayout
			}
			logger.Info("layout is consistent", "path", args[0])
			return nil
		},
	}
}

// writeSummary prints the layout name, one line per pavilion and the
// backlog size.
func writeSummary(w io.Writer, l model.Layout) {
	fmt.Fprintf(w, "%s\n", l.Name)
	for _, s := range export.Summarize(l) {
		c := s.Container
		fmt.Fprintf(w, "  %-20s %-8s %6.1f x %-6.1f m  %3d stands  %3d utilities  %8.1f m²  %5.1f%%\n",
			c.Name, c.Kind, c.Width, c.Depth, s.Stands, s.Utilities, s.StandArea, s.Occupancy)
	}
	fmt.Fprintf(w, "  backlog: %d\n", len(l.Backlog()))
}

func newPlaceCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "place <layout>",
		Short: "Auto-place every backlog object",
		Long: `Place moves every unplaced stand and utility space to the first free grid
cell of its pavilion. Objects that do not fit stay in the backlog. The layout
is saved in place unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ed, err := openEditor(cmd, args[0])
			if err != nil {
				return err
			}
			prog := newProgress(logger)
			placed := ed.PlaceBacklog()
			l := ed.Layout()
			if err := project.SaveLayout(outputPath(output, args[0]), l); err != nil {
				return err
			}
			prog.done("placed backlog", "placed", placed, "remaining", len(l.Backlog()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		output   string
		pavilion string
		dxfUnit  float64
	)
	cmd := &cobra.Command{
		Use:   "import <layout> <file>",
		Short: "Import stands from CSV, Excel or DXF",
		Long: `Import reads stands from a CSV, Excel (.xlsx) or DXF file and adds them to a
pavilion of the layout. Each stand is placed at the first free grid cell or
left in the backlog. Closed DXF outlines become rectangular or L-shaped
stands; --dxf-unit gives the drawing unit in meters (0.001 for millimeters).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			ed, err := openEditor(cmd, args[0])
			if err != nil {
				return err
			}
			if pavilion != "" {
				if err := selectPavilion(ed, pavilion); err != nil {
					return err
				}
			}
			if _, ok := ed.ActiveContainer(); !ok {
				return fmt.Errorf("layout %s has no pavilion to import into", args[0])
			}

			var result importer.ImportResult
			if strings.HasSuffix(strings.ToLower(args[1]), ".dxf") {
				result = importer.ImportDXF(args[1], dxfUnit)
			} else {
				result = importer.ImportFile(args[1])
			}
			for _, w := range result.Warnings {
				logger.Warn("import", "warning", w)
			}
			for _, e := range result.Errors {
				logger.Error("import", "error", e)
			}
			if len(result.Stands) == 0 {
				return fmt.Errorf("no stands imported from %s", args[1])
			}

			placed := ed.ImportStands(result.Stands)
			if err := project.SaveLayout(outputPath(output, args[0]), ed.Layout()); err != nil {
				return err
			}
			logger.Info("imported stands", "count", len(result.Stands), "placed", placed, "skipped", len(result.Errors))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file")
	cmd.Flags().StringVarP(&pavilion, "pavilion", "p", "", "target pavilion name (default: first pavilion)")
	cmd.Flags().Float64Var(&dxfUnit, "dxf-unit", 1, "DXF drawing unit in meters")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a layout to PDF",
	}
	cmd.AddCommand(newExportSubCmd("pdf", "Export the floor plan and stand schedule", export.ExportPlanPDF))
	cmd.AddCommand(newExportSubCmd("labels", "Export QR-coded stand signs", export.ExportStandLabels))
	return cmd
}

func newExportSubCmd(name, short string, write func(string, model.Layout) error) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <layout> <output.pdf>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			l, err := project.LoadLayout(args[0])
			if err != nil {
				return err
			}
			prog := newProgress(logger)
			if err := write(args[1], l); err != nil {
				return err
			}
			prog.done("exported "+name, "path", args[1])
			return nil
		},
	}
}

// openEditor loads a layout into an editor configured from the settings.
func openEditor(cmd *cobra.Command, path string) (*editor.Editor, error) {
	l, err := project.LoadLayout(path)
	if err != nil {
		return nil, err
	}
	ed := editor.New(l, editor.OptionsFromConfig(settingsFromContext(cmd.Context()).config))
	ed.SetLogger(loggerFromContext(cmd.Context()))
	return ed, nil
}

func selectPavilion(ed *editor.Editor, name string) error {
	for _, c := range ed.Layout().Containers {
		if strings.EqualFold(c.Name, name) {
			ed.SetActiveContainer(c.ID)
			return nil
		}
	}
	return fmt.Errorf("no pavilion named %q", name)
}

func outputPath(output, input string) string {
	if output != "" {
		return output
	}
	return input
}
