package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepsmart/internal/rewards"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		svc := rewards.NewService(e.store.EventRepo(), e.store.SnapshotRepo(), e.log)
		totals, err := svc.Totals(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("totals: %w", err)
		}
		best, err := svc.BestScores(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("best scores: %w", err)
		}

		fmt.Printf("Learner:      %s\n", p.Name)
		fmt.Printf("Rank:         %s\n", rewards.RankFor(totals.Points).DisplayName())
		fmt.Printf("Points:       %d\n", totals.Points)
		fmt.Printf("Completions:  %d\n", totals.Completions)
		fmt.Printf("Modules:      %d of %d\n", totals.Modules, e.catalog.Len())

		if len(best) == 0 {
			return nil
		}
		ids := make([]string, 0, len(best))
		for id := range best {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		fmt.Println("\nBest quiz scores:")
		for _, id := range ids {
			title := id
			if m, err := e.catalog.Lookup(id); err == nil {
				title = m.Title
			}
			fmt.Printf("  %-34s  %3d%%\n", title, best[id])
		}
		return nil
	},
}
