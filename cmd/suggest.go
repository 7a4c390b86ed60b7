package cmd

import (
	"encoding/json"
	"fmt"

	"ahha/internal/clix"
	"ahha/internal/keywords"

	"github.com/spf13/cobra"
)

var suggestJSON bool

var suggestCmd = &cobra.Command{
	Use:   "suggest [text...]",
	Short: "Suggest keyword tags for text",
	Long: `Prints up to 7 keyword tags ranked by frequency, ignoring stop words and
words shorter than 3 letters. Reads stdin when no text is given or the text is "-".`,
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := clix.TextFromArgs(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		tags := keywords.SuggestTags(text)

		out := cmd.OutOrStdout()
		if suggestJSON {
			enc := json.NewEncoder(out)
			return enc.Encode(map[string][]string{"suggested_tags": tags})
		}
		if len(tags) == 0 {
			fmt.Fprintln(out, "No tags suggested.")
			return nil
		}
		fmt.Fprintln(out, formatTags(tags))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "print the response body served by /suggest-tags/")
}
