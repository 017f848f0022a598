package options

import (
	"github.com/spf13/cobra"
)

// AccountOptions
type AccountOptions struct {
	Username string
	Email    string
	Password string
	Photo    string
}

func AddSignupArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVarP(&o.Username, "username", "u", "",
		"Name shown on the dashboard and in exports.")
	AddLoginArgs(cmd, o)
	cmd.Flags().StringVar(&o.Photo, "photo", "",
		"Profile picture, a PNG or JPEG file.")
}

func AddLoginArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVarP(&o.Email, "email", "e", "",
		"Account email, it identifies the journal.")
	cmd.Flags().StringVarP(&o.Password, "password", "p", "",
		"Account password. Prompted for when omitted on a terminal.")
}
