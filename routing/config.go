// Package routing synthesizes connector paths between two endpoints: direct
// lines, cubic curves and orthogonal step paths with rounded corners.
package routing

// Config holds the tunable constants of the synthesizers.
type Config struct {
	MinStub             float64 // Minimum length of the first and last step segment (default: 50)
	BaseRadius          float64 // Corner radius before clamping (default: 10)
	RadiusRatio         float64 // Max share of an adjoining segment a corner may use (default: 0.45)
	MinRadius           float64 // Radii under this become hard corners (default: 3)
	SnapThreshold       float64 // Distance under which a middle coordinate snaps to an endpoint (default: 10)
	DegenerateThreshold float64 // Axis delta under which a step path is drawn straight (default: 5)
	IntentThreshold     float64 // Offset magnitude that counts as a deliberate manual edit (default: 5)
	CurveMaxControl     float64 // Upper bound for curve control distance (default: 150)
	CurveControlRatio   float64 // Curve control distance as a share of endpoint distance (default: 0.5)
	DisableSnap         bool    // Keep middle coordinates off the endpoint axes for every connector (default: false)
}

// DefaultConfig returns the constants used by the editor.
func DefaultConfig() Config {
	return Config{
		MinStub:             50,
		BaseRadius:          10,
		RadiusRatio:         0.45,
		MinRadius:           3,
		SnapThreshold:       10,
		DegenerateThreshold: 5,
		IntentThreshold:     5,
		CurveMaxControl:     150,
		CurveControlRatio:   0.5,
	}
}
