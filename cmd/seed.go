package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/internal/seeder"
	"github.com/cryptoblog/blogctl/pkg/output"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the backend with generated demo content",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		config := seeder.DefaultConfig()
		if n, _ := cmd.Flags().GetInt("posts"); n > 0 {
			config.Posts = n
		}
		if n, _ := cmd.Flags().GetInt("comments"); n >= 0 {
			config.CommentsPerPost = n
		}

		runner := seeder.NewRunner(newClient(cmd), config, log)
		created, err := runner.Run(cmd.Context())
		if err != nil {
			return err
		}
		output.Success("Seeded %d demo posts", created)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("posts", 10, "number of demo posts")
	seedCmd.Flags().Int("comments", 3, "comments per demo post")

	rootCmd.AddCommand(seedCmd)
}
