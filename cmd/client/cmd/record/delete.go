package record

import (
	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete reviews by id or id prefix",
	Long: `Deletes reviews from your ledger. Rooms that already share a deleted
review keep working and simply stop showing it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}

		ids, err := app.ResolveRecordIDs(cmd.Context(), args)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if err := app.DeleteRecord(cmd.Context(), id); err != nil {
				return err
			}
			ui.Success(cmd.OutOrStdout(), "Deleted %s", ShortID(id))
		}
		return nil
	},
}
