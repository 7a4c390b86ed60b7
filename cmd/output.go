package cmd

import (
	"fmt"
	"io"
	"strings"

	"ahha/internal/models"
	"ahha/internal/util"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const timeFormat = "2006-01-02 15:04:05"

var tagColor = color.New(color.FgCyan).SprintFunc()

func formatTags(tags []string) string {
	if len(tags) == 0 {
		return color.HiBlackString("(none)")
	}
	colored := make([]string, len(tags))
	for i, t := range tags {
		colored[i] = tagColor(t)
	}
	return strings.Join(colored, ", ")
}

func renderSnippetTable(w io.Writer, snippets []*models.Snippet) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Tags", "Saved At"})
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, s := range snippets {
		table.Append([]string{
			s.ID,
			util.Truncate(s.Title, 40),
			strings.Join(s.GeneratedTags, ", "),
			s.Timestamp.Local().Format(timeFormat),
		})
	}
	table.Render()
}

func printSnippet(w io.Writer, s *models.Snippet) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(w, "%s %s\n", bold("ID:"), s.ID)
	fmt.Fprintf(w, "%s %s\n", bold("Title:"), s.Title)
	fmt.Fprintf(w, "%s %s\n", bold("Saved:"), s.Timestamp.Local().Format(timeFormat))
	if s.PermalinkToOrigin != nil {
		fmt.Fprintf(w, "%s %s\n", bold("Origin:"), *s.PermalinkToOrigin)
	}
	if s.ContentType != nil {
		fmt.Fprintf(w, "%s %s\n", bold("Type:"), *s.ContentType)
	}
	fmt.Fprintf(w, "%s %s\n", bold("Tags:"), formatTags(s.GeneratedTags))
	if s.Notes != nil {
		fmt.Fprintf(w, "%s %s\n", bold("Notes:"), *s.Notes)
	}
	fmt.Fprintf(w, "\n%s\n", s.Content)
}
