package cmd

import (
	"fmt"

	"ahha/internal/services"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		id := args[0]
		if err := appInstance.SnippetService.DeleteSnippet(cmd.Context(), id); err != nil {
			if services.IsNotFound(err) {
				return fmt.Errorf("snippet %s not found", id)
			}
			return fmt.Errorf("failed to delete snippet %s: %w", id, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted snippet %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
