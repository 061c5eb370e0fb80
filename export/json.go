package export

import (
	"encoding/json"

	"connroute/core"
	"connroute/scene"
)

// JSONExporter exports layouts to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Document is the JSON form of a routed layout.
type Document struct {
	Metadata scene.Metadata `json:"metadata"`
	Bounds   core.Bounds    `json:"bounds"`
	Shapes   []core.Shape   `json:"shapes"`
	Paths    []PathDocument `json:"paths"`
}

// PathDocument is one routed connector.
type PathDocument struct {
	ID       string        `json:"id"`
	From     core.Port     `json:"from"`
	To       core.Port     `json:"to"`
	LineType core.LineType `json:"lineType"`
	Mode     string        `json:"mode,omitempty"`
	Points   []core.Point  `json:"points"`
	D        string        `json:"d"`
	Length   float64       `json:"length"`
	Label    *LabelDoc     `json:"label,omitempty"`
}

// LabelDoc is the anchor of a connector label.
type LabelDoc struct {
	Text string     `json:"text"`
	At   core.Point `json:"at"`
	T    float64    `json:"t"`
}

// NewDocument converts a layout to its JSON form.
func NewDocument(l *scene.Layout) Document {
	doc := Document{
		Metadata: l.Scene.Metadata,
		Bounds:   l.Bounds(),
		Shapes:   l.Scene.Shapes,
		Paths:    make([]PathDocument, 0, len(l.Paths)),
	}
	if doc.Shapes == nil {
		doc.Shapes = []core.Shape{}
	}

	for _, p := range l.Paths {
		pd := PathDocument{
			ID:       p.ConnectorID,
			From:     p.From,
			To:       p.To,
			LineType: p.Params.LineType,
			Points:   p.Result.Points,
			D:        p.Result.Geometry.SVG(),
			Length:   p.Result.Geometry.Length(),
		}
		if p.Params.LineType == core.Step && p.Result.Mode != core.ModeAuto {
			pd.Mode = p.Result.Mode.String()
		}
		if c := l.Scene.Connector(p.ConnectorID); c != nil && c.Label != "" {
			pd.Label = &LabelDoc{Text: c.Label, At: p.Label, T: p.LabelT}
		}
		doc.Paths = append(doc.Paths, pd)
	}
	return doc
}

// Export converts a layout to JSON
func (e *JSONExporter) Export(l *scene.Layout) ([]byte, error) {
	if err := checkLayout(l); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(NewDocument(l), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
