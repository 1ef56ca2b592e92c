package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Store an access token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := e.opts.IO.ReadPassword("Access token: ")
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			if err := e.app.Login(cmd.Context(), token); err != nil {
				return err
			}

			if name := e.app.Session.UserID(); name != "" {
				e.opts.IO.Printf("Signed in as %s\n", name)
				return nil
			}
			e.opts.IO.Println("Token saved")
			return nil
		},
	}
}

func newLogoutCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the access token and clear all cached data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.app.Teardown(cmd.Context()); err != nil {
				return err
			}
			e.opts.IO.Println("Signed out, local data cleared")
			return nil
		},
	}
}
