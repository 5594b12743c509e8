package room

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/app/client"
)

var (
	createName    string
	createProtect bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Share the selection as a new room",
	Long: `Creates a room from the current selection and prints its link. With
--protect the room asks visitors for a password. The selection is emptied
afterwards.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if strings.TrimSpace(createName) == "" {
			return errors.New("room name is required (--name)")
		}

		var password string
		if createProtect {
			password, err = ui.ReadPassword(out, "Room password: ")
			if err != nil {
				return err
			}
			if password == "" {
				return errors.New("empty password, drop --protect for a public room")
			}
		}

		created, err := app.CreateRoom(cmd.Context(), createName, password)
		if errors.Is(err, client.ErrEmptySelection) {
			return errors.New("select some reviews first: reviewroom room select <id>")
		}
		if err != nil {
			return err
		}

		ui.Success(out, "Room %q created", createName)
		fmt.Fprintf(out, "Link: %s\n", created.Link)
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createName, "name", "n", "", "room name")
	CreateCmd.Flags().BoolVarP(&createProtect, "protect", "p", false, "ask for a room password")
}
