package cmd

import (
	"errors"
	"fmt"

	"ahha/internal/clix"
	"ahha/internal/services"

	"github.com/spf13/cobra"
)

var (
	tagGenerate bool
	tagQueue    bool
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <id> [tag...]",
	Short: "Set or regenerate a snippet's tags",
	Long: `Replaces the tags of a snippet with the given tags (arguments or --tags).
With --generate the configured LLM tagger produces the tags instead; with --queue
the work is handed to the background worker.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		id := args[0]
		out := cmd.OutOrStdout()

		var tags []string
		switch {
		case tagQueue:
			if appInstance.JobClient == nil {
				return errors.New("--queue requires tagging.async to be enabled")
			}
			if _, err := appInstance.SnippetService.GetSnippet(cmd.Context(), id); err != nil {
				return notFoundOr(id, err)
			}
			if err := appInstance.JobClient.EnqueueTaggingJob(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(out, "Queued tagging job for snippet %s\n", id)
			return nil
		case tagGenerate:
			tags, err = appInstance.SnippetService.TagSnippet(cmd.Context(), id)
		default:
			manual, parseErr := clix.ParseTags(cmd.Flags(), args[1:]...)
			if parseErr != nil {
				return parseErr
			}
			if len(manual) == 0 {
				return errors.New("no tags given; pass tags or use --generate")
			}
			tags, err = appInstance.SnippetService.SetTags(cmd.Context(), id, manual)
		}
		if err != nil {
			return notFoundOr(id, err)
		}

		fmt.Fprintf(out, "Tags for %s: %s\n", id, formatTags(tags))
		return nil
	},
}

func notFoundOr(id string, err error) error {
	if services.IsNotFound(err) {
		return fmt.Errorf("snippet %s not found", id)
	}
	return fmt.Errorf("failed to tag snippet %s: %w", id, err)
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.Flags().String("tags", "", "comma-separated tags")
	tagCmd.Flags().BoolVarP(&tagGenerate, "generate", "g", false, "generate tags with the LLM tagger")
	tagCmd.Flags().BoolVar(&tagQueue, "queue", false, "enqueue an LLM tagging job for the worker")
	tagCmd.MarkFlagsMutuallyExclusive("generate", "queue")
}
