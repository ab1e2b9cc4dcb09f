// Package source reads and writes the record sets a rebuild loads.
//
// A source directory holds one file per entity, either as CSV (the published
// donation dataset's file names, header-addressed columns) or as JSONL (one JSON
// object per line, the format written by export).
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

// Format names a source directory layout.
type Format string

// Supported formats.
const (
	FormatCSV   Format = "csv"
	FormatJSONL Format = "jsonl"
)

// CSV file names.
const (
	ProvidersCSV = "providers_data.csv"
	ReceiversCSV = "receivers_data.csv"
	ListingsCSV  = "food_listings_data.csv"
	ClaimsCSV    = "claims_data.csv"
)

// JSONL file names.
const (
	ProvidersJSONL = "providers.jsonl"
	ReceiversJSONL = "receivers.jsonl"
	ListingsJSONL  = "food_listings.jsonl"
	ClaimsJSONL    = "claims.jsonl"
)

// ErrUnknownFormat is returned for a format other than csv or jsonl, and by
// DetectFormat when a directory holds neither layout.
var ErrUnknownFormat = errors.New("unknown source format")

// ParseFormat maps a name to a Format. The empty name means auto-detect and
// returns "".
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatCSV, FormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat picks the layout whose providers file exists in dir. CSV wins
// when both are present.
func DetectFormat(dir string) (Format, error) {
	if fileExists(filepath.Join(dir, ProvidersCSV)) {
		return FormatCSV, nil
	}
	if fileExists(filepath.Join(dir, ProvidersJSONL)) {
		return FormatJSONL, nil
	}
	return "", fmt.Errorf("%w: no %s or %s in %s", ErrUnknownFormat, ProvidersCSV, ProvidersJSONL, dir)
}

// Load reads all four record sets from dir. An empty format is detected.
// Malformed records are reported wrapped in types.ErrSchema with the file
// name and line number.
func Load(dir string, format Format) (types.Sources, error) {
	if format == "" {
		var err error
		if format, err = DetectFormat(dir); err != nil {
			return types.Sources{}, err
		}
	}
	switch format {
	case FormatCSV:
		return ReadCSVDir(dir)
	case FormatJSONL:
		return ReadJSONLDir(dir)
	default:
		return types.Sources{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func recordErr(file string, line int, err error) error {
	return fmt.Errorf("%w: %s line %d: %w", types.ErrSchema, file, line, err)
}
