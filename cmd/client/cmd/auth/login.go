package auth

import (
	"errors"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/app/client"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in",
	Long: `Authenticates against the server and keeps the token locally.

Logging in starts a fresh session: any previous selection and unlocked
rooms are forgotten.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		name := username
		if name == "" {
			name, err = ui.Prompt(cmd.InOrStdin(), out, "Username: ")
			if err != nil {
				return err
			}
		}

		password, err := ui.ReadPassword(out, "Password: ")
		if err != nil {
			return err
		}

		if err := app.Login(cmd.Context(), name, password); err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return errors.New("wrong username or password")
			}
			return err
		}

		ui.Success(out, "Logged in as %s", name)
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget local state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}

		if err := app.Logout(cmd.Context()); err != nil {
			return err
		}

		ui.Success(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is logged in",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFrom(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		state := app.State()
		if !state.LoggedIn() {
			ui.Warn(out, "Not logged in")
			return nil
		}

		ui.Info(out, "Logged in as %s", state.Username)
		ui.Info(out, "Selected records: %d, unlocked rooms: %d", len(state.Selection), len(state.RoomTokens))
		return nil
	},
}
