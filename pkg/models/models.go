package models

import "time"

// Quote is a single quotation scraped from a result page
type Quote struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// SearchRequest describes one query against the quotation search endpoint
type SearchRequest struct {
	Keyword string
	Offset  int
	// Paged is false for count-only queries, which omit the start parameter
	Paged bool
}

// ResultPage holds the quotes extracted from one fetched document
type ResultPage struct {
	Offset   int
	Quotes   []Quote
	Total    int
	HasTotal bool
}

// Response is a raw HTTP response body as kept by the response cache
type Response struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code"`
	Body         []byte    `json:"-"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// ScrapeResult is the outcome of scraping every page for one keyword
type ScrapeResult struct {
	Keyword   string        `json:"keyword"`
	Total     int           `json:"total"`
	Pages     int           `json:"pages"`
	Quotes    []Quote       `json:"quotes"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}
