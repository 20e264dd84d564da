package search

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/law-makers/quotes/pkg/models"
)

const (
	// DefaultEndpoint is the creativequotations.com search CGI
	DefaultEndpoint = "https://creativequotations.com/cgi-bin/sql_search3.cgi"

	// PageSize is the number of results the endpoint renders per page
	PageSize = 50
)

// NewCountRequest builds a count-only request; it carries no start offset
func NewCountRequest(keyword string) models.SearchRequest {
	return models.SearchRequest{Keyword: keyword}
}

// NewPageRequest builds the request for the page starting at offset
func NewPageRequest(keyword string, offset int) models.SearchRequest {
	return models.SearchRequest{Keyword: keyword, Offset: offset, Paged: true}
}

// BuildQuery returns the query parameters for req. The keyword is passed through verbatim.
func BuildQuery(req models.SearchRequest) url.Values {
	params := url.Values{}
	params.Set("keyword", req.Keyword)
	params.Set("boolean", "and")
	params.Set("field", "all")
	params.Set("frank", "all")
	params.Set("database", "all")
	if req.Paged {
		params.Set("start", strconv.Itoa(req.Offset))
	}
	return params
}

// RequestURL joins endpoint and the encoded query for req. Parameters already
// present on endpoint are kept unless the search overrides them.
func RequestURL(endpoint string, req models.SearchRequest) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}

	q := u.Query()
	for k, v := range BuildQuery(req) {
		q[k] = v
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
