package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reviewroom/cmd/client/cmd/types"
	"reviewroom/cmd/client/cmd/ui"
	"reviewroom/internal/app/client"
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
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
		confirm, err := ui.ReadPassword(out, "Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		if err := app.Register(cmd.Context(), name, password); err != nil {
			if errors.Is(err, client.ErrConflict) {
				return fmt.Errorf("username %q is already taken", name)
			}
			return err
		}

		ui.Success(out, "Account %s created", name)
		fmt.Fprintln(out, "Log in with: reviewroom auth login")
		return nil
	},
}
