package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://creativequotations.com/cgi-bin/sql_search3.cgi",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateURL(u), u)
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "::"}
	for _, u := range invalid {
		assert.Error(t, ValidateURL(u), u)
	}
}

func TestHost(t *testing.T) {
	assert.Equal(t, "creativequotations.com", Host("https://creativequotations.com/cgi-bin/x"))
	assert.Equal(t, "nothost", Host("nothost"))
}
