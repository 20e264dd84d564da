package output

import (
	"encoding/json"
	"os"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/pkg/models"
)

// SaveJSON writes quotes as an indented JSON array of {quote, author} objects.
func SaveJSON(quotes []models.Quote, filepath string) error {
	if quotes == nil {
		quotes = []models.Quote{}
	}

	content, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return engine.IOError("failed to encode quotes", err)
	}
	if err := os.WriteFile(filepath, content, 0644); err != nil {
		return engine.IOError("failed to write output file", err)
	}
	return nil
}
