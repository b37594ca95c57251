// Package layout refines an initial circle packing into a bubble treemap
// layout.
//
// # Algorithm
//
// [Engine.Run] walks the hierarchy from the deepest internal level up to the
// root. At each depth the leaves are grouped into clusters (one per node at
// that depth), and clusters that share a grandparent form a group. Every
// group is simulated on its own: each cluster becomes one rigid body with a
// circle fixture per leaf, inflated by the leaf's physics padding, and a
// zero-length spring pulls the body towards the group's attraction target.
// Once the simulation has run, the fixture centres are written back into
// the [Placement].
//
// Depths run strictly one after another, since each depth starts from the
// positions settled by the depth below. Groups of the same depth touch
// disjoint leaves and are simulated concurrently.
//
// # Policies
//
// The attraction target is the area-weighted centroid of the group's
// leaves ([TargetCentroid], the default) or the canvas centre
// ([TargetCanvas]). Groups whose leaves all have zero radius fall back to
// the plain average of the centres and are reported in [Result.Degenerate].
// Fixtures of different bodies still overlapping after a simulation are
// reported in [Result.Overlaps]; they do not fail the run.
package layout
