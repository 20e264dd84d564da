package engine

import (
	"context"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/quotes/pkg/models"
)

// Fetcher is the interface that all fetching engines must implement
type Fetcher interface {
	// Fetch issues a GET for the given URL and parses the body as HTML
	Fetch(ctx context.Context, url string) (*models.Response, *goquery.Document, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
