package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of the hierarchy with the given hash.
	LayoutKey(hierarchyHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds everything besides the hierarchy that changes a
// layout.
type LayoutKeyOpts struct {
	Width     float64  `json:"width"`
	Height    float64  `json:"height"`
	Padding   float64  `json:"padding"`
	Curvature float64  `json:"curvature"`
	Spacing   string   `json:"spacing"`
	Target    string   `json:"target"`
	Colormap  []string `json:"colormap"`
	Precision int      `json:"precision"`
	Physics   string   `json:"physics"` // Hash of the solver configuration
}

// ArtifactKeyOpts holds everything besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Labels     bool    `json:"labels"`
	Internal   bool    `json:"internal"`
	Background string  `json:"background"`
	Scale      float64 `json:"scale"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(hierarchyHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", hierarchyHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
