package cmd

import (
	"fmt"

	"ahha/internal/clix"
	"ahha/internal/store"

	"github.com/spf13/cobra"
)

var listSearch string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snippets, newest first",
	Long: `Displays stored snippets. --search matches title, content and notes
case-insensitively, or a tag exactly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app from context: %w", err)
		}

		snippets, err := appInstance.SnippetService.ListSnippets(cmd.Context(), store.ListParams{
			Search: listSearch,
			Limit:  pagination.Limit,
			Offset: pagination.Offset,
		})
		if err != nil {
			return fmt.Errorf("failed to list snippets: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(snippets) == 0 {
			fmt.Fprintln(out, "No snippets found.")
			return nil
		}
		renderSnippetTable(out, snippets)
		fmt.Fprintf(out, "Displayed %d snippets.\n", len(snippets))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntP("limit", "l", 20, "Number of snippets to display")
	listCmd.Flags().IntP("offset", "o", 0, "Number of snippets to skip")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Search term")
}
