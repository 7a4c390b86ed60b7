package cmd

import (
	"fmt"

	"ahha/internal/services"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one snippet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		snippet, err := appInstance.SnippetService.GetSnippet(cmd.Context(), args[0])
		if err != nil {
			if services.IsNotFound(err) {
				return fmt.Errorf("snippet %s not found", args[0])
			}
			return fmt.Errorf("failed to get snippet: %w", err)
		}
		printSnippet(cmd.OutOrStdout(), snippet)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
