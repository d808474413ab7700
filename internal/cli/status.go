package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the authenticated admin and a membership summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()

			a, err := c.Me(cmd.Context())
			if err != nil {
				return err
			}

			counts, err := c.MemberSummary(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s), role %s\n\n", a.FullName, a.Email, a.Role)

			rows := make([][]string, 0, len(counts))
			for status, n := range counts {
				rows = append(rows, []string{status, fmt.Sprintf("%d", n)})
			}
			return printData(cmd.OutOrStdout(), counts, []string{"STATUS", "MEMBERS"}, rows)
		},
	}
}
