package room

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/app/client"
)

var OpenCmd = &cobra.Command{
	Use:   "open <room-id|link>",
	Short: "Open a room, asking for its password when it has one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		id, err := ParseRoomRef(args[0])
		if err != nil {
			return err
		}

		// one round trip to learn whether a password is needed
		summary, err := app.OpenRoom(cmd.Context(), id, "")
		if errors.Is(err, client.ErrUnauthorized) {
			password, perr := ui.ReadPassword(out, "Room password: ")
			if perr != nil {
				return perr
			}
			summary, err = app.OpenRoom(cmd.Context(), id, password)
		}
		switch {
		case errors.Is(err, client.ErrUnauthorized):
			return errors.New("wrong room password")
		case errors.Is(err, client.ErrRateLimited):
			return client.ErrRateLimited
		case errors.Is(err, client.ErrNotFound):
			return errors.New("no such room")
		case err != nil:
			return err
		}

		ui.Success(out, "Opened %q by %s", summary.Name, summary.Creator)
		return show(cmd, id)
	},
}

var ViewCmd = &cobra.Command{
	Use:   "view <room-id|link>",
	Short: "Show the reviews in a room you opened",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := ParseRoomRef(args[0])
		if err != nil {
			return err
		}

		err = show(cmd, id)
		if errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("room is locked, run: reviewroom room open %s", id)
		}
		return err
	},
}

func show(cmd *cobra.Command, id uuid.UUID) error {
	app, err := types.AppFrom(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	view, err := app.ViewRoom(cmd.Context(), id)
	if err != nil {
		return err
	}

	ui.Info(out, "%s (%d of %d shared reviews still available)", view.Room.Name, len(view.Records), view.Room.RecordCount)
	if len(view.Records) == 0 {
		return nil
	}
	return writeRecords(out, view.Records, recordsFormat)
}
