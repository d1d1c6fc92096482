package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/pkg/output"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Read and manage comments",
}

var commentsListCmd = &cobra.Command{
	Use:   "list <post-id>",
	Short: "List comments on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")

		result, err := client.CommentsByPost(cmd.Context(), args[0], page, size)
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(result)
		}
		table := output.NewTable("ID", "AUTHOR", "CREATED", "COMMENT")
		for _, c := range result.Content {
			created := ""
			if !c.CreatedAt.IsZero() {
				created = c.CreatedAt.Format("2006-01-02 15:04")
			}
			table.AddRow(c.ID, c.AuthorName, created, output.Truncate(c.Content, 72))
		}
		table.Render()
		output.Info("Page %d of %d (%d comments total)", result.Number+1, result.TotalPages, result.TotalElements)
		return nil
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		comment, err := client.CreateComment(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		output.Success("Comment %s added", comment.ID)
		return nil
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete <comment-id>",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		if err := client.DeleteComment(cmd.Context(), args[0]); err != nil {
			return err
		}
		output.Success("Deleted comment %s", args[0])
		return nil
	},
}

var commentsCountCmd = &cobra.Command{
	Use:   "count <post-id>",
	Short: "Show the comment count for a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		count, err := client.CommentCount(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		output.Info("%d", count)
		return nil
	},
}

func init() {
	commentsListCmd.Flags().Int("page", 0, "page number (zero-based)")
	commentsListCmd.Flags().Int("size", 20, "page size")

	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsDeleteCmd, commentsCountCmd)
	rootCmd.AddCommand(commentsCmd)
}
