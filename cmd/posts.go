package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/internal/api"
	"github.com/cryptoblog/blogctl/pkg/output"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse and manage blog posts",
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		ctx := cmd.Context()
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")

		category, _ := cmd.Flags().GetString("category")
		status, _ := cmd.Flags().GetString("status")
		author, _ := cmd.Flags().GetString("author")
		all, _ := cmd.Flags().GetBool("all-statuses")

		var (
			result *api.PostPage
			err    error
		)
		switch {
		case all:
			if err := requireAuth(); err != nil {
				return err
			}
			result, err = client.AdminPosts(ctx, page, size)
		case status != "":
			if err := requireAuth(); err != nil {
				return err
			}
			result, err = client.PostsByStatus(ctx, strings.ToUpper(status), page, size)
		case category != "":
			result, err = client.PostsByCategory(ctx, category, page, size)
		case author != "":
			result, err = client.PostsByAuthor(ctx, author, page, size)
		default:
			result, err = client.ListPosts(ctx, page, size)
		}
		if err != nil {
			return err
		}
		return renderPostPage(cmd, result)
	},
}

var postsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)

		var (
			post *api.Post
			err  error
		)
		if bySlug, _ := cmd.Flags().GetBool("slug"); bySlug {
			post, err = client.GetPostBySlug(cmd.Context(), args[0])
		} else {
			post, err = client.GetPost(cmd.Context(), args[0])
		}
		if err != nil {
			return err
		}
		return renderPost(cmd, post)
	},
}

var postsSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search posts by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		page, _ := cmd.Flags().GetInt("page")
		size, _ := cmd.Flags().GetInt("size")

		result, err := client.SearchPosts(cmd.Context(), args[0], page, size)
		if err != nil {
			return err
		}
		if len(result.Content) == 0 {
			// Zero matches is a normal outcome, not a failure.
			output.Warn("No posts found matching %q", args[0])
			return nil
		}
		return renderPostPage(cmd, result)
	},
}

var postsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a post",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)

		req, err := postRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		if req.Title == "" || req.Content == "" {
			return fmt.Errorf("--title and --content are required")
		}

		post, err := client.CreatePost(cmd.Context(), req)
		if err != nil {
			return err
		}
		output.Success("Created post %s (%s)", post.ID, output.Sanitize(post.Title))
		return nil
	},
}

var postsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)

		req, err := postRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		post, err := client.UpdatePost(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		output.Success("Updated post %s", post.ID)
		return nil
	},
}

var postsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		if err := client.DeletePost(cmd.Context(), args[0]); err != nil {
			return err
		}
		output.Success("Deleted post %s", args[0])
		return nil
	},
}

func transitionCmd(use, short, verb string, call func(*api.Client, *cobra.Command, string) (*api.Post, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}
			client := newClient(cmd)
			post, err := call(client, cmd, args[0])
			if err != nil {
				return err
			}
			output.Success("Post %s is now %s", post.ID, verb)
			return nil
		},
	}
}

func postRequestFromFlags(cmd *cobra.Command) (api.PostRequest, error) {
	title, _ := cmd.Flags().GetString("title")
	content, _ := cmd.Flags().GetString("content")
	excerpt, _ := cmd.Flags().GetString("excerpt")
	category, _ := cmd.Flags().GetString("category")
	image, _ := cmd.Flags().GetString("featured-image")
	status, _ := cmd.Flags().GetString("status")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	metaDesc, _ := cmd.Flags().GetString("meta-description")

	if status != "" {
		status = strings.ToUpper(status)
		switch status {
		case api.StatusPublished, api.StatusDraft, api.StatusArchived:
		default:
			return api.PostRequest{}, fmt.Errorf("invalid status %q (want published, draft or archived)", status)
		}
	}

	return api.PostRequest{
		Title:           title,
		Content:         content,
		Excerpt:         excerpt,
		CategoryID:      category,
		FeaturedImage:   image,
		Status:          status,
		Tags:            tags,
		MetaDescription: metaDesc,
	}, nil
}

func renderPostPage(cmd *cobra.Command, page *api.PostPage) error {
	if outputFormat(cmd) == "json" {
		return output.JSON(page)
	}

	table := output.NewTable("ID", "TITLE", "STATUS", "AUTHOR", "CREATED", "VIEWS")
	for _, post := range page.Content {
		author := ""
		if post.Author != nil {
			author = post.Author.Username
		}
		created := ""
		if !post.CreatedAt.IsZero() {
			created = post.CreatedAt.Format("2006-01-02 15:04")
		}
		table.AddRow(
			post.ID,
			output.Truncate(post.Title, 48),
			post.Status,
			author,
			created,
			strconv.Itoa(post.ViewCount),
		)
	}
	table.Render()
	output.Info("Page %d of %d (%d posts total)", page.Number+1, page.TotalPages, page.TotalElements)
	return nil
}

func renderPost(cmd *cobra.Command, post *api.Post) error {
	if outputFormat(cmd) == "json" {
		return output.JSON(post)
	}

	output.Info("Title:   %s", output.Sanitize(post.Title))
	if post.Author != nil {
		output.Info("Author:  %s", output.Sanitize(post.Author.Username))
	}
	if post.Category != nil {
		output.Info("Category: %s", output.Sanitize(post.Category.Name))
	}
	if post.Status != "" {
		output.Info("Status:  %s", post.Status)
	}
	if len(post.Tags) > 0 {
		output.Info("Tags:    %s", output.Sanitize(strings.Join(post.Tags, ", ")))
	}
	if !post.PublishedAt.IsZero() {
		output.Info("Published: %s", post.PublishedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(output.Stdout)
	fmt.Fprintln(output.Stdout, output.Sanitize(post.Excerpt))
	if post.Content != "" {
		fmt.Fprintln(output.Stdout)
		fmt.Fprintln(output.Stdout, post.Content)
	}
	return nil
}

func init() {
	postsListCmd.Flags().Int("page", 0, "page number (zero-based)")
	postsListCmd.Flags().Int("size", 10, "page size")
	postsListCmd.Flags().String("category", "", "filter by category id")
	postsListCmd.Flags().String("status", "", "filter by status (requires login)")
	postsListCmd.Flags().String("author", "", "filter by author username")
	postsListCmd.Flags().Bool("all-statuses", false, "merged listing across every status (requires login)")

	postsGetCmd.Flags().Bool("slug", false, "look up by slug instead of id")

	postsSearchCmd.Flags().Int("page", 0, "page number (zero-based)")
	postsSearchCmd.Flags().Int("size", 10, "page size")

	for _, c := range []*cobra.Command{postsCreateCmd, postsUpdateCmd} {
		c.Flags().String("title", "", "post title")
		c.Flags().String("content", "", "post body (markdown)")
		c.Flags().String("excerpt", "", "short summary")
		c.Flags().String("category", "", "category id")
		c.Flags().String("featured-image", "", "featured image URL")
		c.Flags().String("status", "", "published, draft or archived")
		c.Flags().StringSlice("tags", nil, "comma-separated tags")
		c.Flags().String("meta-description", "", "SEO description")
	}

	postsCmd.AddCommand(
		postsListCmd,
		postsGetCmd,
		postsSearchCmd,
		postsCreateCmd,
		postsUpdateCmd,
		postsDeleteCmd,
		transitionCmd("publish", "Publish a post", "published", func(c *api.Client, cmd *cobra.Command, id string) (*api.Post, error) {
			return c.PublishPost(cmd.Context(), id)
		}),
		transitionCmd("hide", "Archive a published post", "archived", func(c *api.Client, cmd *cobra.Command, id string) (*api.Post, error) {
			return c.HidePost(cmd.Context(), id)
		}),
		transitionCmd("draft", "Move a post back to draft", "a draft", func(c *api.Client, cmd *cobra.Command, id string) (*api.Post, error) {
			return c.DraftPost(cmd.Context(), id)
		}),
	)
	rootCmd.AddCommand(postsCmd)
}
