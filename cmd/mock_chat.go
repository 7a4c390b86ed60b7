package cmd

import (
	"fmt"

	"ahha/internal/apihandlers"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var mockChatCmd = &cobra.Command{
	Use:         "mock-chat",
	Short:       "Print the demo chat log served at /mock-chat/",
	Annotations: map[string]string{skipAppAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		user := color.New(color.FgGreen, color.Bold).SprintFunc()
		ai := color.New(color.FgMagenta, color.Bold).SprintFunc()
		for _, m := range apihandlers.MockChatLog() {
			speaker := user(m.User)
			if m.User == "AI" {
				speaker = ai(m.User)
			}
			fmt.Fprintf(out, "[%d] %s: %s\n\n", m.ID, speaker, m.Text)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mockChatCmd)
}
