package export

import (
	"fmt"
	"strings"

	"connroute/render"
	"connroute/scene"
	"connroute/validation"
)

// ASCIIExporter exports layouts to ASCII/Unicode art format
type ASCIIExporter struct {
	renderer *render.Renderer
	verify   bool
}

// NewASCIIExporter creates a new ASCII exporter
func NewASCIIExporter(opts Options) *ASCIIExporter {
	ro := render.DefaultOptions()
	ro.ASCII = opts.ASCII
	ro.Margin = opts.Margin
	if opts.CellX > 0 {
		ro.ScaleX = opts.CellX
	}
	if opts.CellY > 0 {
		ro.ScaleY = opts.CellY
	}
	return &ASCIIExporter{
		renderer: render.NewRenderer(ro),
		verify:   opts.Verify,
	}
}

// Export converts the layout to ASCII/Unicode art
func (e *ASCIIExporter) Export(l *scene.Layout) ([]byte, error) {
	if err := checkLayout(l); err != nil {
		return nil, err
	}

	output, err := e.renderer.Render(l)
	if err != nil {
		return nil, fmt.Errorf("failed to render layout: %w", err)
	}

	if e.verify {
		if errs := validation.NewGlyphChecker().Check(output); len(errs) > 0 {
			msgs := make([]string, len(errs))
			for i, ge := range errs {
				msgs[i] = ge.String()
			}
			return nil, fmt.Errorf("rendered layout does not join up: %s", strings.Join(msgs, "; "))
		}
	}

	return []byte(output + "\n"), nil
}

// GetFileExtension returns the recommended file extension
func (e *ASCIIExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ASCIIExporter) GetFormatName() string {
	return "ASCII/Unicode Art"
}
