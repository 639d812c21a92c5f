package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepsmart/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List completed modules",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		moduleID, _ := cmd.Flags().GetString("module")

		e, err := openEnv(cfg)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		p, err := e.store.ProfileRepo().Current(ctx)
		if err != nil {
			return fmt.Errorf("current profile: %w", err)
		}
		if p == nil {
			fmt.Println("Nobody is signed in. Run: prepsmart login <name>")
			return nil
		}

		recs, err := e.store.EventRepo().QueryCompletions(ctx, store.QueryOpts{
			Limit:    limit,
			UserID:   p.ID,
			ModuleID: moduleID,
		})
		if err != nil {
			return fmt.Errorf("query completions: %w", err)
		}

		fmt.Printf("%-17s  %-34s  %6s  %5s  %8s\n", "Date", "Module", "Points", "Quiz", "Duration")
		fmt.Println(strings.Repeat("─", 80))
		for _, r := range recs {
			quiz := "-"
			if r.QuizScore != nil {
				quiz = fmt.Sprintf("%d%%", *r.QuizScore)
			}
			fmt.Printf("%-17s  %-34s  %6d  %5s  %5d:%02d\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"), r.ModuleTitle, r.Points, quiz,
				r.DurationSecs/60, r.DurationSecs%60)
		}
		fmt.Printf("\n%d completions\n", len(recs))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of completions to show")
	historyCmd.Flags().String("module", "", "Only show completions of this module id")
}
