package layout

// Target selects the point cluster bodies are pulled towards.
type Target int

const (
	// TargetCentroid pulls towards the area-weighted centroid of the group.
	TargetCentroid Target = iota
	// TargetCanvas pulls towards the canvas centre.
	TargetCanvas
)

// String returns the policy name used in flags and config files.
func (t Target) String() string {
	if t == TargetCanvas {
		return "canvas"
	}
	return "centroid"
}

// ParseTarget maps a policy name to a Target. Unknown names report false.
func ParseTarget(name string) (Target, bool) {
	switch name {
	case "", "centroid":
		return TargetCentroid, true
	case "canvas":
		return TargetCanvas, true
	}
	return TargetCentroid, false
}

// DefaultTolerance is the overlap in pixels below which fixtures of
// different bodies are considered touching rather than overlapping.
const DefaultTolerance = 0.5
