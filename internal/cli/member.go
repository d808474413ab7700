package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gymdesk/gymdesk/pkg/client"
)

func newMembersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Work with gym members",
	}
	cmd.AddCommand(newMembersListCmd())
	return cmd
}

func newMembersListCmd() *cobra.Command {
	var status, search string
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List members",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()

			result, err := c.ListMembers(cmd.Context(), client.MemberFilter{
				Status: status,
				Search: search,
				Page:   page,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(result.Data))
			for _, m := range result.Data {
				rows = append(rows, []string{
					fmt.Sprintf("%d", m.ID),
					m.FullName,
					m.Status,
					m.JoinedAt.Format("2006-01-02"),
				})
			}

			if err := printData(cmd.OutOrStdout(), result, []string{"ID", "NAME", "STATUS", "JOINED"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\npage %d of %d (%d total)\n",
				result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&search, "search", "", "search by name or email")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}
