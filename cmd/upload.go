package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cryptoblog/blogctl/pkg/output"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("cannot open %s: %w", args[0], err)
		}
		defer f.Close()

		client := newClient(cmd)
		resp, err := client.UploadImage(cmd.Context(), args[0], f)
		if err != nil {
			return err
		}

		if outputFormat(cmd) == "json" {
			return output.JSON(resp)
		}
		output.Success("Uploaded %s", args[0])
		output.Info("%s", resp.URL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
