// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Authenticate against the service and store the session",
	Long: `Login exchanges credentials for a session token and persists it, so
subsequent commands run authenticated until the session expires or you
log out. The password is read from --password or, if omitted, from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	if username == "" && len(args) > 0 {
		username = args[0]
	}
	if username == "" {
		return fmt.Errorf("provide a username (argument or --username)")
	}

	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("no password provided")
		}
		password = strings.TrimSpace(scanner.Text())
	}

	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	token, err := client.Login(context.Background(), username, password)
	if err != nil {
		return err
	}
	if err := store.Set(token); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	fmt.Printf("Logged in as %s\n", username)
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, store, err := newClient()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := newClient()
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := client.Me(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s>\n", user.Username, user.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "account username")
	loginCmd.Flags().String("password", "", "account password (prompted if omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
