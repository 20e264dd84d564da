package search

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/pkg/models"
	"golang.org/x/net/html"
)

// ItemExtractor turns one result list item into at most one Quote.
//
// Quote and author come out of the same item, so a malformed item is skipped
// as a whole and never shifts the pairing of the items after it.
type ItemExtractor interface {
	Extract(item *goquery.Selection) (models.Quote, bool)
}

// PositionalExtractor reads the layout used by the search results:
//
//	<li><b>"quote text"</b> ... <br>Author Name (source) ...</li>
//
// The quote is the first <b> child. The author is the text node at position
// AuthorPosition among the text siblings that follow it (2 when unset).
type PositionalExtractor struct {
	AuthorPosition int
}

// Extract implements ItemExtractor
func (e PositionalExtractor) Extract(item *goquery.Selection) (models.Quote, bool) {
	bold := item.ChildrenFiltered("b").First()
	if bold.Length() == 0 {
		return models.Quote{}, false
	}

	text := CleanQuote(bold.Text())
	if text == "" {
		return models.Quote{}, false
	}

	pos := e.AuthorPosition
	if pos <= 0 {
		pos = 2
	}

	seen := 0
	for n := bold.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.TextNode {
			continue
		}
		seen++
		if seen == pos {
			return models.Quote{Text: text, Author: CleanAuthor(n.Data)}, true
		}
	}

	return models.Quote{}, false
}

// ExtractQuotes runs extractor over every list item of doc, in document order
func ExtractQuotes(doc *goquery.Document, extractor ItemExtractor) []models.Quote {
	if doc == nil {
		return nil
	}
	if extractor == nil {
		extractor = PositionalExtractor{}
	}

	var quotes []models.Quote
	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		if q, ok := extractor.Extract(item); ok {
			quotes = append(quotes, q)
		}
	})
	return quotes
}

// CleanQuote strips wrapping quotation marks and surrounding whitespace
func CleanQuote(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '"' || r == '“' || r == '”' || unicode.IsSpace(r)
	})
}

// CleanAuthor drops everything from the first "(" on and trims the rest
func CleanAuthor(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
