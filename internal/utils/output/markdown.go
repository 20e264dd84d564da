package output

import (
	"html"
	"os"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/pkg/models"
)

// RenderMarkdown lays quotes out as HTML blockquotes and converts them, so
// Markdown metacharacters inside quotes are escaped by the converter.
func RenderMarkdown(keyword string, quotes []models.Quote) (string, error) {
	var b strings.Builder
	b.WriteString("<h1>Quotes about " + html.EscapeString(keyword) + "</h1>")
	for _, q := range quotes {
		b.WriteString("<blockquote><p>")
		b.WriteString(html.EscapeString(q.Text))
		b.WriteString("</p>")
		if q.Author != "" {
			b.WriteString("<p><em>" + html.EscapeString(q.Author) + "</em></p>")
		}
		b.WriteString("</blockquote>")
	}

	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(b.String())
}

// SaveMarkdown renders quotes with RenderMarkdown and writes them to filepath
func SaveMarkdown(keyword string, quotes []models.Quote, filepath string) error {
	mdStr, err := RenderMarkdown(keyword, quotes)
	if err != nil {
		return engine.IOError("failed to render markdown", err)
	}
	if err := os.WriteFile(filepath, []byte(mdStr+"\n"), 0644); err != nil {
		return engine.IOError("failed to write output file", err)
	}
	return nil
}
