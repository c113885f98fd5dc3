package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/plumehq/plume/internal/config"
	"github.com/plumehq/plume/internal/store"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent transforms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if !cfg.HistoryEnabled() {
				fmt.Println("History is disabled (history.enabled: false).")
				return nil
			}
			if cfg.History.Store == "memory" {
				fmt.Println("History uses the in-memory store; nothing persists between runs.")
				return nil
			}

			db, err := store.Open(paths.History, log)
			if err != nil {
				return err
			}
			defer db.Close()

			recs, err := store.NewSQLiteHistoryStore(db).Recent(limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println("No transforms recorded yet.")
				return nil
			}

			for _, rec := range recs {
				fmt.Printf("%s  %-5s  %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04"), rec.Status, truncate(rec.Instruction, 60))
				if rec.Status == store.StatusError {
					fmt.Printf("  error: %s\n", truncate(rec.Error, 100))
				} else {
					fmt.Printf("  reply: %s\n", truncate(oneLine(rec.Reply), 100))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries to show")

	return cmd
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}
