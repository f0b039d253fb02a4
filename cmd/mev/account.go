package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/mev/internal/model"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials against the backend",
		Long:  "Logs in with a username and password. Missing values are prompted for.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if username == "" {
				if username, err = prompt("아이디", false); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt("비밀번호", true); err != nil {
					return err
				}
			}

			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			if err := client.Login(cmd.Context(), model.LoginRequest{UserName: username, Password: password}); err != nil {
				return fmt.Errorf("login: %w", err)
			}
			fmt.Printf("Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when empty)")
	cmd.AddCommand(c.newFindIDCmd(), c.newFindPasswordCmd())
	return cmd
}

func (c *cli) newFindIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-id <email>",
		Short: "Look up the user name registered for an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			name, err := client.FindID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("find id: %w", err)
			}
			fmt.Println(name)
			return nil
		},
	}
}

func (c *cli) newFindPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find-password <email>",
		Short: "Send a temporary password to an email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.client(c.stderrLogger())
			if err != nil {
				return err
			}
			if err := client.FindPassword(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("find password: %w", err)
			}
			fmt.Printf("Temporary password sent to %s\n", args[0])
			return nil
		},
	}
}
