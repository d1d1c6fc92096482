package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/pkg/output"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage post categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		categories, err := client.ListCategories(cmd.Context())
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(categories)
		}
		table := output.NewTable("ID", "NAME", "DESCRIPTION")
		for _, c := range categories {
			table.AddRow(c.ID, c.Name, output.Truncate(c.Description, 60))
		}
		table.Render()
		return nil
	},
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newClient(cmd)
		category, err := client.GetCategory(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(category)
		}
		output.Info("Name: %s", output.Sanitize(category.Name))
		if category.Description != "" {
			output.Info("Description: %s", output.Sanitize(category.Description))
		}
		return nil
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		description, _ := cmd.Flags().GetString("description")

		category, err := client.CreateCategory(cmd.Context(), args[0], description)
		if err != nil {
			return err
		}
		output.Success("Created category %s (%s)", category.ID, output.Sanitize(category.Name))
		return nil
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		description, _ := cmd.Flags().GetString("description")

		category, err := client.UpdateCategory(cmd.Context(), args[0], args[1], description)
		if err != nil {
			return err
		}
		output.Success("Updated category %s", category.ID)
		return nil
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		client := newClient(cmd)
		if err := client.DeleteCategory(cmd.Context(), args[0]); err != nil {
			return err
		}
		output.Success("Deleted category %s", args[0])
		return nil
	},
}

func init() {
	categoriesCreateCmd.Flags().String("description", "", "category description")
	categoriesUpdateCmd.Flags().String("description", "", "category description")

	categoriesCmd.AddCommand(categoriesListCmd, categoriesGetCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
	rootCmd.AddCommand(categoriesCmd)
}
