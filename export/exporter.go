// Package export writes routed layouts to files: text art, SVG, PNG, JSON
// and a compressed binary snapshot.
package export

import (
	"errors"
	"fmt"
	"strings"

	"connroute/scene"
)

// ErrEmptyLayout is returned when a layout has nothing to export.
var ErrEmptyLayout = errors.New("layout is empty")

// Format represents an export format
type Format string

const (
	// FormatASCII exports to ASCII/Unicode art
	FormatASCII Format = "ascii"
	// FormatSVG exports to an SVG document
	FormatSVG Format = "svg"
	// FormatPNG exports to a PNG image
	FormatPNG Format = "png"
	// FormatJSON exports shapes and routed paths as JSON
	FormatJSON Format = "json"
	// FormatSnapshot exports a zstd-compressed msgpack snapshot
	FormatSnapshot Format = "snapshot"
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a layout to the target format
	Export(l *scene.Layout) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// Options are shared by the exporters that draw.
type Options struct {
	ASCII  bool    // text art with ASCII glyphs only
	Verify bool    // check that text art joins up before returning it
	Scale  float64 // PNG pixels per diagram unit
	CellX  float64 // diagram units per text column
	CellY  float64 // diagram units per text row
	Margin int     // text cells, or 20 diagram units per cell for images
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Scale: 1, CellX: 10, CellY: 20, Margin: 1}
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatASCII:
		return NewASCIIExporter(opts), nil
	case FormatSVG:
		return NewSVGExporter(opts), nil
	case FormatPNG:
		return NewPNGExporter(opts), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSnapshot:
		return NewSnapshotExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	case "snapshot", "snap":
		return FormatSnapshot, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) (Format, bool) {
	lower := strings.ToLower(path)
	for _, f := range GetAvailableFormats() {
		e, _ := NewExporter(f, DefaultOptions())
		if strings.HasSuffix(lower, e.GetFileExtension()) {
			return f, true
		}
	}
	return "", false
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatASCII,
		FormatSVG,
		FormatPNG,
		FormatJSON,
		FormatSnapshot,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatASCII:    "ASCII/Unicode art for terminals",
		FormatSVG:      "SVG document with rounded step paths",
		FormatPNG:      "PNG image",
		FormatJSON:     "shapes, ports and path geometry as JSON",
		FormatSnapshot: "compressed binary snapshot of the routed scene",
	}
}

func checkLayout(l *scene.Layout) error {
	if l.IsEmpty() {
		return ErrEmptyLayout
	}
	return nil
}
