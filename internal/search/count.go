package search

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/internal/engine"
	"golang.org/x/net/html"
)

const matchesPhrase = "matches found"

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractCount returns the total match count reported by a result document.
//
// The count lives in a bold element whose text reads like "123 matches found".
// The first run of digits in that text is the count. A missing sentence or a
// sentence without digits ("No matches found") is an extraction error.
func ExtractCount(doc *goquery.Document) (int, error) {
	sentence, ok := matchesSentence(doc)
	if !ok {
		return 0, engine.ExtractionError(fmt.Sprintf("no element contains %q", matchesPhrase))
	}

	digits := digitRun.FindString(sentence)
	if digits == "" {
		return 0, engine.ExtractionError(fmt.Sprintf("no digits in %q", strings.TrimSpace(sentence))).
			WithDetail("sentence", sentence)
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, engine.NewEngineError(engine.ErrCodeExtraction, "match count out of range", err)
	}
	return n, nil
}

// matchesSentence finds the first text node directly under a <b> that carries the phrase
func matchesSentence(doc *goquery.Document) (string, bool) {
	if doc == nil {
		return "", false
	}

	var sentence string
	found := false
	doc.Find("b").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode && strings.Contains(c.Data, matchesPhrase) {
				sentence = c.Data
				found = true
				return false
			}
		}
		return true
	})
	return sentence, found
}
