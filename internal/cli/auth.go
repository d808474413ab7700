package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the API and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Email: ")
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &email); err != nil {
					return fmt.Errorf("read email: %w", err)
				}
			}

			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			c := apiClient()
			a, err := c.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return err
			}

			if err := saveToken(c.Token()); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", a.FullName, a.Email)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "admin email")
	return cmd
}

// promptPassword reads the password without echo when stdin is a terminal
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return password, nil
}
