package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery_CountOmitsStart(t *testing.T) {
	q := BuildQuery(NewCountRequest("god"))

	assert.Equal(t, "god", q.Get("keyword"))
	assert.Equal(t, "and", q.Get("boolean"))
	assert.Equal(t, "all", q.Get("field"))
	assert.Equal(t, "all", q.Get("frank"))
	assert.Equal(t, "all", q.Get("database"))
	assert.False(t, q.Has("start"))
}

func TestBuildQuery_PageIncludesStart(t *testing.T) {
	assert.Equal(t, "0", BuildQuery(NewPageRequest("god", 0)).Get("start"))
	assert.Equal(t, "150", BuildQuery(NewPageRequest("god", 150)).Get("start"))
}

func TestBuildQuery_KeywordVerbatim(t *testing.T) {
	q := BuildQuery(NewPageRequest(`love & "war"`, 50))
	assert.Equal(t, `love & "war"`, q.Get("keyword"))
}

func TestRequestURL(t *testing.T) {
	raw, err := RequestURL("https://example.com/cgi-bin/search.cgi?lang=en", NewPageRequest("god", 50))
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/cgi-bin/search.cgi", u.Path)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, "50", u.Query().Get("start"))
	assert.Equal(t, "god", u.Query().Get("keyword"))

	_, err = RequestURL("://bad", NewCountRequest("god"))
	assert.Error(t, err)
}
