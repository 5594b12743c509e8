package auth

import (
	"github.com/spf13/cobra"
)

// AuthCmd groups the account commands.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Account management",
	Long:  `Register, log in and log out.`,
}

var username string

func init() {
	RegisterCmd.Flags().StringVarP(&username, "username", "u", "", "account name (prompted when empty)")
	LoginCmd.Flags().StringVarP(&username, "username", "u", "", "account name (prompted when empty)")
}
