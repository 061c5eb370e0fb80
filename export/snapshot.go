package export

import (
	"fmt"

	"connroute/core"
	"connroute/scene"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// SnapshotVersion is written into every snapshot.
const SnapshotVersion = 1

// Snapshot is the binary form of a routed layout: the scene with its pinned
// ports plus the computed paths, so a viewer can show it without routing.
type Snapshot struct {
	Version int            `msgpack:"version"`
	Scene   *scene.Scene   `msgpack:"scene"`
	Paths   []SnapshotPath `msgpack:"paths"`
}

// SnapshotPath is one routed connector in a snapshot.
type SnapshotPath struct {
	ConnectorID string       `msgpack:"id"`
	From        core.PortID  `msgpack:"from,omitempty"`
	To          core.PortID  `msgpack:"to,omitempty"`
	Mode        core.Mode    `msgpack:"mode"`
	Points      []core.Point `msgpack:"points"`
	D           string       `msgpack:"d"`
	Label       core.Point   `msgpack:"label"`
	LabelT      float64      `msgpack:"label_t"`
}

// SnapshotExporter exports layouts to zstd-compressed msgpack
type SnapshotExporter struct{}

// NewSnapshotExporter creates a new snapshot exporter
func NewSnapshotExporter() *SnapshotExporter {
	return &SnapshotExporter{}
}

// NewSnapshot captures a layout.
func NewSnapshot(l *scene.Layout) *Snapshot {
	snap := &Snapshot{
		Version: SnapshotVersion,
		Scene:   l.Scene,
		Paths:   make([]SnapshotPath, 0, len(l.Paths)),
	}
	for _, p := range l.Paths {
		snap.Paths = append(snap.Paths, SnapshotPath{
			ConnectorID: p.ConnectorID,
			From:        p.From.ID,
			To:          p.To.ID,
			Mode:        p.Result.Mode,
			Points:      p.Result.Points,
			D:           p.Result.Geometry.SVG(),
			Label:       p.Label,
			LabelT:      p.LabelT,
		})
	}
	return snap
}

// Export encodes and compresses the layout
func (e *SnapshotExporter) Export(l *scene.Layout) ([]byte, error) {
	if err := checkLayout(l); err != nil {
		return nil, err
	}

	data, err := msgpack.Marshal(NewSnapshot(l))
	if err != nil {
		return nil, fmt.Errorf("codec encoding failed: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("compression failed: %w", err)
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

// ReadSnapshot decompresses and decodes a snapshot.
func ReadSnapshot(data []byte) (*Snapshot, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}
	defer decoder.Close()

	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompression failed: %w", err)
	}

	var snap Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("codec decoding failed: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Scene == nil {
		snap.Scene = &scene.Scene{}
	}
	return &snap, nil
}

// GetFileExtension returns the file extension for snapshots
func (e *SnapshotExporter) GetFileExtension() string {
	return ".snap"
}

// GetFormatName returns the format name
func (e *SnapshotExporter) GetFormatName() string {
	return "Snapshot (msgpack + zstd)"
}
