package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"expensync/internal/client"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentialsFromFlags(cmd)
		if err != nil {
			return err
		}
		tokens, err := api.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		name := email
		if tokens.User != nil && tokens.User.Name != "" {
			name = tokens.User.Name
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", name)
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, password, err := credentialsFromFlags(cmd)
		if err != nil {
			return err
		}
		u, err := api.Signup(cmd.Context(), client.SignupRequest{Name: name, Email: email, Password: password})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run 'expensync login' to continue.\n", u.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the session and forget credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := api.Me(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringP("email", "e", "", "account email")
		c.Flags().StringP("password", "p", "", "password (prompted when omitted)")
	}
	signupCmd.Flags().StringP("name", "n", "", "display name")
	_ = signupCmd.MarkFlagRequired("name")
}

// credentialsFromFlags reads email and password, prompting on stdin for
// whichever flag was left empty.
func credentialsFromFlags(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	in := bufio.NewReader(cmd.InOrStdin())
	var err error
	if email == "" {
		if email, err = prompt(cmd, in, "Email: "); err != nil {
			return "", "", err
		}
	}
	if password == "" {
		if password, err = prompt(cmd, in, "Password: "); err != nil {
			return "", "", err
		}
	}
	return email, password, nil
}

func prompt(cmd *cobra.Command, in *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
