package output

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/law-makers/quotes/internal/engine"
	"github.com/law-makers/quotes/pkg/models"
)

// SaveCSV writes one (quote, author) record per quote to filepath, truncating
// any existing file. There is no header row.
func SaveCSV(quotes []models.Quote, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return engine.IOError("failed to open output file", err)
	}

	if err := WriteCSV(file, quotes); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return engine.IOError("failed to close output file", err)
	}
	return nil
}

// WriteCSV encodes quotes to w. Fields holding commas, quotes or newlines are
// quoted and embedded quotes are doubled.
func WriteCSV(w io.Writer, quotes []models.Quote) error {
	writer := csv.NewWriter(w)

	for _, q := range quotes {
		if err := writer.Write([]string{q.Text, q.Author}); err != nil {
			return engine.IOError("failed to write record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return engine.IOError("failed to flush records", err)
	}
	return nil
}
