package cmd

import (
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"github.com/mumvest/mumvest/internal/app"
	"github.com/spf13/cobra"
)

func StatsCmd() *cobra.Command {
	var tables bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print streak, XP, independence score and total saved",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				ctx := cmd.Context()

				score, err := a.ProgressService.RecalculateScore(ctx)
				if err != nil {
					return err
				}
				total, err := a.GoalService.TotalSaved(ctx)
				if err != nil {
					return err
				}
				currency, err := a.UserService.Currency(ctx)
				if err != nil {
					return err
				}
				state := a.GamificationService.State()

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "streak\t%d (longest %d)\n", state.CurrentStreak, state.LongestStreak)
				fmt.Fprintf(w, "xp\t%d\n", state.TotalXP)
				fmt.Fprintf(w, "independence score\t%d\n", score)
				fmt.Fprintf(w, "badges\t%d\n", len(state.EarnedBadges))
				fmt.Fprintf(w, "total saved\t%s\n", currency.Format(total))

				if tables {
					counts, err := a.ExportService.Counts(ctx)
					if err != nil {
						return err
					}
					for _, name := range slices.Sorted(maps.Keys(counts)) {
						fmt.Fprintf(w, "rows %s\t%d\n", name, counts[name])
					}
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&tables, "tables", false, "also print row counts per table")
	return cmd
}
