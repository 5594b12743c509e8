package room

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rooms you created",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		rooms, err := app.ListRooms(cmd.Context())
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			ui.Warn(out, "No rooms yet")
			return nil
		}

		fmt.Fprint(out, renderRooms(rooms))
		return nil
	},
}
