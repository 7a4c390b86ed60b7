package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"ahha/internal/inputprocessor"
	"ahha/internal/services"
	"ahha/internal/util"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const maxDefaultTitleRunes = 80

var (
	addTitle string
	addNotes string
	addURL   string
)

var addCmd = &cobra.Command{
	Use:   "add [input]",
	Short: "Save a new snippet",
	Long: `Saves a snippet from a file path, an http(s) URL, or raw text.
HTML input is stored as content_type "html". A fetched URL becomes the snippet's
origin link unless --url is given. Without --title, the file name or the first
sentence of the text is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Processor.Process(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		params := services.CreateSnippetParams{
			Title:       addTitle,
			Content:     res.Body,
			ContentType: &res.ContentType,
		}
		if addNotes != "" {
			params.Notes = &addNotes
		}
		switch {
		case addURL != "":
			params.PermalinkToOrigin = &addURL
		case res.URL != nil:
			params.PermalinkToOrigin = res.URL
		}
		if strings.TrimSpace(params.Title) == "" {
			params.Title = defaultTitle(res)
		}

		snippet, err := appInstance.SnippetService.CreateSnippet(cmd.Context(), params)
		if err != nil {
			return fmt.Errorf("failed to save snippet: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", color.GreenString("Saved"), snippet.ID, snippet.Title)
		fmt.Fprintf(cmd.OutOrStdout(), "Tags: %s\n", formatTags(snippet.GeneratedTags))
		return nil
	},
}

func defaultTitle(res inputprocessor.Result) string {
	if res.FilePath != nil {
		return filepath.Base(*res.FilePath)
	}
	text := res.Body
	if res.ContentType == "html" {
		text = util.StripHTML(text)
	}
	if title := util.FirstSentence(text, maxDefaultTitleRunes); title != "" {
		return title
	}
	if res.URL != nil {
		return *res.URL
	}
	return ""
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "snippet title")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "free-form notes")
	addCmd.Flags().StringVar(&addURL, "url", "", "origin link to store with the snippet")
}
