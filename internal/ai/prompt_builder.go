package ai

import "strings"

// BuildReviewPrompt formats the weekly summary for the text model.
func BuildReviewPrompt(summaryJSON string) string {
	var b strings.Builder

	b.WriteString("Here is this week's task summary as JSON:\n")
	b.WriteString(summaryJSON)
	b.WriteString("\n\n")
	b.WriteString("Write the weekly review described in your instructions.\n")

	return b.String()
}
