package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gymdesk/gymdesk/pkg/client"
)

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Work with the admin notification feed",
	}
	cmd.AddCommand(newNotificationsTailCmd())
	cmd.AddCommand(newNotificationsReadCmd())
	cmd.AddCommand(newNotificationsSyncCmd())
	return cmd
}

func newNotificationsTailCmd() *cobra.Command {
	var showHeartbeats bool

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow the live notification stream",
		Long: `Connects to the notification stream and prints events as they arrive.
Dropped connections are retried automatically with backoff. Interrupt to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()
			out := cmd.OutOrStdout()

			return c.SubscribeNotifications(cmd.Context(), func(ev client.Event) error {
				switch ev.Name {
				case "heartbeat":
					if showHeartbeats {
						fmt.Fprintf(out, "%s heartbeat\n", time.Now().Format(time.TimeOnly))
					}
				case "connected":
					fmt.Fprintf(out, "%s connected\n", time.Now().Format(time.TimeOnly))
				case "notifications":
					var payload client.NotificationsPayload
					if err := json.Unmarshal(ev.Data, &payload); err != nil {
						return err
					}
					fmt.Fprintf(out, "%s %d unread\n", time.Now().Format(time.TimeOnly), payload.UnreadCount)
					for _, a := range payload.Notifications {
						fmt.Fprintf(out, "  [%s/%s] %s: %s\n", a.Priority, a.Type, a.ID, a.Message)
					}
				case "error":
					fmt.Fprintf(out, "%s stream error, reconnecting\n", time.Now().Format(time.TimeOnly))
				default:
					fmt.Fprintf(out, "%s %s %s\n", time.Now().Format(time.TimeOnly), ev.Name, string(ev.Data))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showHeartbeats, "heartbeats", false, "print heartbeat events")
	return cmd
}

func newNotificationsReadCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "read <alert-id>",
		Short: "Mark one alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()

			result, err := c.MarkNotificationRead(cmd.Context(), args[0], category)
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("mark-read failed: %s", result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "marked %s read, %d unread\n", args[0], result.UnreadCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "alert category tag")
	return cmd
}

func newNotificationsSyncCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mark all alerts read, or clear all read-markers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := apiClient()

			var result *client.SyncResult
			var err error
			if clear {
				result, err = c.ClearAllNotifications(cmd.Context())
			} else {
				result, err = c.MarkAllNotificationsRead(cmd.Context())
			}
			if err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("sync failed: %s", result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "done, %d unread\n", result.UnreadCount)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "delete all read-markers instead of marking all read")
	return cmd
}
