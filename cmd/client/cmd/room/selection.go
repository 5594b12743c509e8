package room

import (
	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
)

var SelectCmd = &cobra.Command{
	Use:   "select <record-id>...",
	Short: "Add reviews to the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}

		ids, err := app.ResolveRecordIDs(cmd.Context(), args)
		if err != nil {
			return err
		}
		if err := app.Select(cmd.Context(), ids...); err != nil {
			return err
		}

		ui.Success(cmd.OutOrStdout(), "%d review(s) selected", len(app.State().Selection))
		return nil
	},
}

var UnselectCmd = &cobra.Command{
	Use:   "unselect <record-id>...",
	Short: "Remove reviews from the selection",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}

		ids, err := app.ResolveRecordIDs(cmd.Context(), args)
		if err != nil {
			return err
		}
		if err := app.Unselect(cmd.Context(), ids...); err != nil {
			return err
		}

		ui.Success(cmd.OutOrStdout(), "%d review(s) selected", len(app.State().Selection))
		return nil
	},
}

var SelectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Show the selected reviews",
	Long: `Shows the current selection. Reviews deleted since they were selected
are dropped from it.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		selected, err := app.Selection(cmd.Context())
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			ui.Warn(out, "Nothing selected")
			return nil
		}

		return writeRecords(out, selected, recordsFormat)
	},
}

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the selection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.ClearSelection(cmd.Context()); err != nil {
			return err
		}

		ui.Success(cmd.OutOrStdout(), "Selection cleared")
		return nil
	},
}
