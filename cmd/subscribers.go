package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/pkg/output"
)

var subscribersCmd = &cobra.Command{
	Use:   "subscribers",
	Short: "Manage newsletter subscribers",
}

var subscribeCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Subscribe an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		if err := client.Subscribe(cmd.Context(), args[0]); err != nil {
			return err
		}
		output.Success("Subscribed %s", output.Sanitize(args[0]))
		return nil
	},
}

var unsubscribeCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Unsubscribe an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		if err := client.Unsubscribe(cmd.Context(), args[0]); err != nil {
			return err
		}
		output.Success("Unsubscribed %s", output.Sanitize(args[0]))
		return nil
	},
}

var subscribersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List subscribers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		subscribers, err := client.ListSubscribers(cmd.Context())
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(subscribers)
		}
		table := output.NewTable("ID", "EMAIL", "ACTIVE", "SINCE")
		for _, s := range subscribers {
			active := "no"
			if s.Active {
				active = "yes"
			}
			since := ""
			if !s.SubscribedAt.IsZero() {
				since = s.SubscribedAt.Format("2006-01-02")
			}
			table.AddRow(s.ID, s.Email, active, since)
		}
		table.Render()
		return nil
	},
}

var subscribersCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the active subscriber count",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		count, err := client.SubscriberCount(cmd.Context())
		if err != nil {
			return err
		}
		output.Info("%d", count)
		return nil
	},
}

var subscribersCheckCmd = &cobra.Command{
	Use:   "check <email>",
	Short: "Check whether an email is subscribed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		subscribed, err := client.CheckSubscription(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if subscribed {
			output.Success("%s is subscribed", output.Sanitize(args[0]))
		} else {
			output.Warn("%s is not subscribed", output.Sanitize(args[0]))
		}
		return nil
	},
}

func init() {
	subscribersCmd.AddCommand(subscribeCmd, unsubscribeCmd, subscribersListCmd, subscribersCountCmd, subscribersCheckCmd)
	rootCmd.AddCommand(subscribersCmd)
}
