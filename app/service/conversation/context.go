package conversation

import (
	"strings"

	"screenmate/app/service/history"
)

const contextInstruction = "Keep responses short and conversational."

// BuildContext renders the system message fed to the chat model: the latest
// screen analysis followed by the full viewing history, oldest first.
// Pure function, same inputs always produce the same string.
func BuildContext(latest string, entries []history.Entry) string {
	var builder strings.Builder

	builder.WriteString("Current Screen: ")
	builder.WriteString(latest)
	builder.WriteString("\nViewing History:\n")

	for _, entry := range entries {
		builder.WriteString("[")
		builder.WriteString(entry.Timestamp)
		builder.WriteString("]: ")
		builder.WriteString(entry.Analysis)
		builder.WriteString("\n")
	}

	builder.WriteString(contextInstruction)

	return builder.String()
}
