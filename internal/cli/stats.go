package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fadedpez/tong777/internal/console"
	"github.com/fadedpez/tong777/internal/factory"
)

func newStatsCmd(e *env) *cobra.Command {
	var archived int

	cmd := &cobra.Command{
		Use:   "stats <username>",
		Short: "Show a player's history summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.New(e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			username := args[0]
			recorder, balance, err := app.Service.Stats(cmd.Context(), username)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			console.WriteStats(out, username, balance, recorder, nil)

			if archived > 0 && app.Archiver != nil {
				records, err := app.Archiver.Recent(cmd.Context(), username, archived)
				if err != nil {
					e.logger.Warn("Failed to read archive: %v", err)
					return nil
				}
				fmt.Fprintf(out, "Archived rounds (%d):\n", len(records))
				for _, rec := range records {
					fmt.Fprintf(out, "  %s %-10s %-9s %s\n",
						rec.Timestamp.Format("2006-01-02 15:04"), rec.Game, rec.Outcome, rec.Result.StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&archived, "archived", 0, "Also list this many rounds from the Elasticsearch archive")

	return cmd
}
