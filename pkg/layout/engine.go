package layout

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
	"github.com/matzehuels/bubbletreemap/pkg/hierarchy"
	"github.com/matzehuels/bubbletreemap/pkg/observability"
	"github.com/matzehuels/bubbletreemap/pkg/physics"
)

// Engine runs the depth-by-depth cluster simulation.
type Engine struct {
	Solver      physics.Solver
	Logger      *log.Logger
	Spacing     hierarchy.Spacing
	Target      Target
	Tolerance   float64 // Overlap tolerance in pixels, DefaultTolerance if zero
	Parallelism int     // Concurrent groups per depth, GOMAXPROCS if zero
}

// NewEngine returns an engine with the default Box2D solver.
func NewEngine() *Engine {
	return &Engine{
		Solver: physics.NewBox2D(physics.DefaultConfig()),
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// Degenerate reports a group or cluster whose leaves carry no area.
type Degenerate struct {
	Depth   int   `json:"depth"`
	NodeIDs []int `json:"node_ids"`
}

// Overlap reports two leaves of different clusters whose fixtures still
// overlap after a simulation.
type Overlap struct {
	Depth  int     `json:"depth"`
	A      int     `json:"a"`
	B      int     `json:"b"`
	Amount float64 `json:"amount"`
}

// Result is the outcome of Engine.Run.
type Result struct {
	Placement   *Placement
	Degenerate  []Degenerate
	Overlaps    []Overlap
	Simulations int
	Duration    time.Duration
}

type groupResult struct {
	settled    []physics.Settled
	degenerate []Degenerate
	overlaps   []Overlap
}

// Run refines p in place for tree and returns it inside the result. p must
// come from an initial packing of the same tree.
func (e *Engine) Run(tree *hierarchy.Tree, p *Placement, padding, width, height float64) (*Result, error) {
	if !p.Fits(tree) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "placement does not match hierarchy (%d nodes)", tree.Len())
	}
	if err := errors.ValidatePadding("padding", padding); err != nil {
		return nil, err
	}
	if err := errors.ValidateCanvas(width, height); err != nil {
		return nil, err
	}

	logger := e.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	solver := e.Solver
	if solver == nil {
		solver = physics.NewBox2D(physics.DefaultConfig())
	}
	tol := e.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}
	limit := e.Parallelism
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	canvas := geom.V(width/2, height/2)

	start := time.Now()
	res := &Result{Placement: p}

	for depth := tree.Height() - 1; depth >= 0; depth-- {
		clusters := hierarchy.BuildClustersWithSpacing(tree.Root, depth, padding, e.Spacing)

		parents := make([]*hierarchy.Node, len(clusters))
		for i, c := range clusters {
			parents[i] = c.Parent.Parent
		}
		var groups [][]hierarchy.Cluster
		for _, gp := range dedupe(parents) {
			var g []hierarchy.Cluster
			for i, c := range clusters {
				if parents[i] == gp {
					g = append(g, c)
				}
			}
			if len(g) < 2 {
				continue
			}
			groups = append(groups, g)
		}
		logger.Debug("layout depth", "depth", depth, "clusters", len(clusters), "groups", len(groups))

		results := make([]groupResult, len(groups))
		var eg errgroup.Group
		eg.SetLimit(limit)
		for i, g := range groups {
			eg.Go(func() error {
				t0 := time.Now()
				r, err := e.settleGroup(solver, p, g, depth, canvas, tol)
				if err != nil {
					return fmt.Errorf("depth %d, group of %q: %w", depth, g[0].Parent.Name, err)
				}
				results[i] = r
				observability.Layout().OnGroupSettled(depth, len(g), time.Since(t0))
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		// Writes happen after the wait so every group reads the positions
		// of the depth below.
		for _, r := range results {
			for _, s := range r.settled {
				p.Centers[s.ID] = s.Center
			}
			res.Degenerate = append(res.Degenerate, r.degenerate...)
			res.Overlaps = append(res.Overlaps, r.overlaps...)
			if len(r.degenerate) > 0 {
				observability.Layout().OnDegenerate(depth)
			}
			if len(r.overlaps) > 0 {
				observability.Layout().OnOverlap(depth, len(r.overlaps))
			}
		}
		res.Simulations += len(groups)
	}

	centerInternalNodes(tree, p)
	res.Duration = time.Since(start)
	logger.Debug("layout done", "simulations", res.Simulations, "overlaps", len(res.Overlaps), "duration", res.Duration)
	return res, nil
}

func (e *Engine) settleGroup(solver physics.Solver, p *Placement, group []hierarchy.Cluster, depth int, canvas geom.Vec2, tol float64) (groupResult, error) {
	var r groupResult

	var all []geom.Circle
	var allIDs []int
	bodies := make([]physics.Body, len(group))
	owner := map[int]int{}
	for bi, c := range group {
		circles := make([]geom.Circle, len(c.Members))
		ids := make([]int, len(c.Members))
		for i, m := range c.Members {
			circles[i] = p.Circle(m.Node.ID)
			ids[i] = m.Node.ID
			owner[m.Node.ID] = bi
		}
		origin, ok := Centroid(circles)
		if !ok {
			r.degenerate = append(r.degenerate, Degenerate{Depth: depth, NodeIDs: ids})
		}
		body := physics.Body{Origin: origin, Fixtures: make([]physics.Fixture, len(c.Members))}
		for i, m := range c.Members {
			body.Fixtures[i] = physics.Fixture{
				ID:     m.Node.ID,
				Center: circles[i].Center,
				Radius: circles[i].Radius + m.PlanckPadding,
			}
		}
		bodies[bi] = body
		all = append(all, circles...)
		allIDs = append(allIDs, ids...)
	}

	anchor := canvas
	if e.Target == TargetCentroid {
		var ok bool
		anchor, ok = Centroid(all)
		if !ok {
			r.degenerate = append(r.degenerate, Degenerate{Depth: depth, NodeIDs: allIDs})
		}
	}

	settled, err := solver.Settle(anchor, bodies)
	if err != nil {
		return r, err
	}
	r.settled = settled

	radius := map[int]float64{}
	for _, b := range bodies {
		for _, f := range b.Fixtures {
			radius[f.ID] = f.Radius
		}
	}
	for i := 0; i < len(settled); i++ {
		for j := i + 1; j < len(settled); j++ {
			a, b := settled[i], settled[j]
			if owner[a.ID] == owner[b.ID] {
				continue
			}
			amount := radius[a.ID] + radius[b.ID] - a.Center.Distance(b.Center)
			if amount > tol {
				r.overlaps = append(r.overlaps, Overlap{Depth: depth, A: a.ID, B: b.ID, Amount: amount})
			}
		}
	}
	return r, nil
}

// centerInternalNodes moves every internal node to the area-weighted
// centroid of its leaves.
func centerInternalNodes(tree *hierarchy.Tree, p *Placement) {
	for _, n := range tree.Nodes() {
		if n.IsLeaf() {
			continue
		}
		leaves := n.Leaves()
		circles := make([]geom.Circle, len(leaves))
		for i, l := range leaves {
			circles[i] = p.Circle(l.ID)
		}
		p.Centers[n.ID], _ = Centroid(circles)
	}
}
