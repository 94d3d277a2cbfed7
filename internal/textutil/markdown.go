package textutil

import (
	"github.com/russross/blackfriday/v2"
)

// MarkdownToText converts markdown to plain text by rendering it to HTML
// and extracting the visible text. Good enough for article bodies that
// arrive as markdown exports; structural markers (headings, lists) become
// plain sentences.
func MarkdownToText(md string) string {
	rendered := blackfriday.Run([]byte(md))
	return HTMLToText(string(rendered))
}
