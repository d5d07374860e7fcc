package cli

import (
	"fmt"
	"time"

	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/repository"
	"github.com/spf13/cobra"
)

var pruneOlderThan time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune-idempotency",
	Short: "Delete cached idempotent responses older than a cutoff",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(database *db.DB) error {
			cutoff := time.Now().UTC().Add(-pruneOlderThan)
			removed, err := repository.NewIdempotencyRepository(database).DeleteOlderThan(cmd.Context(), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d idempotency keys created before %s\n", removed, cutoff.Format(time.RFC3339))
			return nil
		})
	},
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 24*time.Hour, "age of keys to delete")
	rootCmd.AddCommand(pruneCmd)
}
