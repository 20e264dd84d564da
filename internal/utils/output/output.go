// Package output writes scraped quotes to disk.
package output

import (
	"path/filepath"
	"strings"

	"github.com/law-makers/quotes/pkg/models"
	"github.com/rs/zerolog"
)

// Format is an output file format
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// FormatFor picks the format from the file extension; anything unknown is CSV
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatCSV
	}
}

// Save writes quotes to path in the format implied by its extension and logs
// once the file is closed.
func Save(path, keyword string, quotes []models.Quote, logger zerolog.Logger) error {
	var err error
	format := FormatFor(path)
	switch format {
	case FormatJSON:
		err = SaveJSON(quotes, path)
	case FormatMarkdown:
		err = SaveMarkdown(keyword, quotes, path)
	default:
		err = SaveCSV(quotes, path)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Str("file", path).
		Str("format", string(format)).
		Int("records", len(quotes)).
		Msg("File was written")
	return nil
}

// FilenameForKeyword derives a safe file name such as "god.csv" from a keyword
func FilenameForKeyword(keyword, ext string) string {
	name := strings.TrimSpace(keyword)

	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t', '\n':
			return '_'
		}
		return r
	}, name)
	name = strings.ReplaceAll(name, "..", "_")
	name = strings.Trim(name, "._")

	if name == "" {
		name = "quotes"
	}
	if len(name) > 200 {
		name = name[:200]
	}

	if ext == "" {
		ext = ".csv"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return name + ext
}
