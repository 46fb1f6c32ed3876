package cli

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/piwi3910/StandPlan/internal/ui"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui [layout]",
		Short: "Open the desktop editor",
		Long:  `Open the desktop floor-plan editor, optionally loading a saved layout.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), args)
		},
	}
}

func runGUI(ctx context.Context, args []string) error {
	logger := loggerFromContext(ctx)
	s := settingsFromContext(ctx)

	application := app.NewWithID("com.piwi3910.standplan")
	window := application.NewWindow("StandPlan")

	appUI := ui.NewApp(application, window, s.config, s.path, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	appUI.SetupKeyboard()
	window.Resize(fyne.NewSize(1400, 850))
	window.CenterOnScreen()
	window.SetMaster()

	if len(args) == 1 {
		if err := appUI.OpenLayout(args[0]); err != nil {
			return err
		}
	}

	go func() {
		<-ctx.Done()
		fyne.Do(application.Quit)
	}()

	logger.Debug("starting editor", "config", s.path)
	window.ShowAndRun()
	return nil
}
