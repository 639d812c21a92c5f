package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the available learning modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		modules := e.catalog.All()

		fmt.Printf("%-6s  %-34s  %-12s  %-12s  %6s  %5s\n",
			"ID", "Title", "Difficulty", "Time", "Points", "Steps")
		fmt.Println(strings.Repeat("─", 86))

		for _, m := range modules {
			title := m.Title
			if len(title) > 34 {
				title = title[:31] + "..."
			}
			fmt.Printf("%-6s  %-34s  %-12s  %-12s  %6d  %5d\n",
				m.ID, title, m.Difficulty, m.EstimatedTime, m.Points, len(m.Steps))
		}

		fmt.Printf("\n%d modules\n", len(modules))
		return nil
	},
}
