package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/prepsmart/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// startModule, when set, opens that module's intro on launch.
func runApp(cmd *cobra.Command, startModule string) error {
	e, err := openEnv(cfg)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Catalog:     e.catalog,
		Store:       e.store,
		Log:         e.log,
		QuizDelay:   cfg.QuizDelay,
		StartModule: startModule,
	})
}
