package main

import (
	"bookshelf/internal/shared"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		users, err := c.ListUsers(cmd.Context())
		if err != nil {
			return err
		}
		printUsers(cmd.OutOrStdout(), users)
		return nil
	},
}

var newUser shared.User

var addUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Create or replace a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		created, err := c.AddUser(cmd.Context(), newUser)
		if err != nil {
			return err
		}
		printSaved(cmd.OutOrStdout(), "user", newUser.Name, created)
		return nil
	},
}

func init() {
	addUserCmd.Flags().StringVar(&newUser.Name, "name", "", "user name")
	addUserCmd.Flags().IntVar(&newUser.Age, "age", 0, "age in years")
	_ = addUserCmd.MarkFlagRequired("name")
	_ = addUserCmd.MarkFlagRequired("age")

	rootCmd.AddCommand(usersCmd, addUserCmd)
}
