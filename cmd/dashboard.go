package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/pkg/output"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the admin dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		if !store.IsAdmin() {
			return fmt.Errorf("dashboard requires an administrator account")
		}

		client := newClient(cmd)
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")

		overview, err := client.DashboardOverview(cmd.Context(), page, size)
		if errors.Is(err, api.ErrStaleSession) {
			output.Warn("Session changed while loading, please retry")
			return nil
		}
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(overview)
		}

		stats := overview.Stats
		output.Info("Posts:       %d total (%d published, %d drafts, %d archived)",
			stats.TotalPosts, stats.PublishedPosts, stats.DraftPosts, stats.ArchivedPosts)
		output.Info("Comments:    %d", stats.TotalComments)
		output.Info("Subscribers: %d active of %d", stats.ActiveSubscribers, stats.TotalSubscribers)
		output.Info("Users:       %d", stats.TotalUsers)
		fmt.Fprintln(output.Stdout)
		return renderPostPage(cmd, overview.RecentPosts)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <posts|subscribers|engagement>",
	Short: "Show a single stats breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		ctx := cmd.Context()

		switch args[0] {
		case "posts":
			stats, err := client.PostStats(ctx)
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return output.JSON(stats)
			}
			output.Info("Published: %d", stats.Published)
			output.Info("Drafts:    %d", stats.Draft)
			output.Info("Archived:  %d", stats.Archived)
			output.Info("Total:     %d", stats.Total)
		case "subscribers":
			stats, err := client.SubscriberStats(ctx)
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return output.JSON(stats)
			}
			output.Info("Active:   %d", stats.Active)
			output.Info("Inactive: %d", stats.Inactive)
			output.Info("Total:    %d", stats.Total)
		case "engagement":
			stats, err := client.EngagementStats(ctx)
			if err != nil {
				return err
			}
			if outputFormat(cmd) == "json" {
				return output.JSON(stats)
			}
			output.Info("Comments:          %d", stats.TotalComments)
			output.Info("Posts:             %d", stats.TotalPosts)
			output.Info("Comments per post: %.2f", stats.AvgCommentsPerPost)
		default:
			return fmt.Errorf("unknown stats breakdown %q", args[0])
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().Int("page", 0, "recent posts page (zero-based)")
	dashboardCmd.Flags().Int("size", 10, "recent posts page size")

	rootCmd.AddCommand(dashboardCmd, statsCmd)
}
