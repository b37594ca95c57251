package physics

import (
	"io"

	"github.com/ByteArena/box2d"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/geom"
)

// Box2D is a Solver backed by a zero-gravity Box2D world.
//
// Every call builds a fresh world: one static anchor body, one dynamic body
// per cluster with a circle fixture per member, and a distance joint of
// rest length zero between the anchor and each cluster body.
type Box2D struct {
	Config Config
	Logger *log.Logger
}

// NewBox2D returns a solver with cfg, filling zero fields with defaults.
func NewBox2D(cfg Config) *Box2D {
	cfg.SetDefaults()
	return &Box2D{Config: cfg, Logger: log.NewWithOptions(io.Discard, log.Options{})}
}

type placedFixture struct {
	id    int
	body  *box2d.B2Body
	local box2d.B2Vec2
}

// Settle implements Solver.
func (s *Box2D) Settle(anchor geom.Vec2, bodies []Body) ([]Settled, error) {
	cfg := s.Config
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := s.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	world := box2d.MakeB2World(box2d.MakeB2Vec2(0, 0))

	anchorDef := box2d.MakeB2BodyDef()
	anchorDef.Position = box2d.MakeB2Vec2(anchor.X, anchor.Y)
	anchorBody := world.CreateBody(&anchorDef)

	var (
		fixtures []placedFixture
		dynamic  []*box2d.B2Body
	)
	for _, b := range bodies {
		bd := box2d.MakeB2BodyDef()
		bd.Type = box2d.B2BodyType.B2_dynamicBody
		bd.Position = box2d.MakeB2Vec2(b.Origin.X, b.Origin.Y)
		body := world.CreateBody(&bd)

		for _, f := range b.Fixtures {
			local := f.Center.Sub(b.Origin)
			shape := box2d.MakeB2CircleShape()
			shape.M_p = box2d.MakeB2Vec2(local.X, local.Y)
			shape.M_radius = f.Radius

			fd := box2d.MakeB2FixtureDef()
			fd.Shape = &shape
			fd.Density = cfg.Density
			fd.Friction = cfg.Friction
			fd.UserData = f.ID
			body.CreateFixtureFromDef(&fd)

			fixtures = append(fixtures, placedFixture{id: f.ID, body: body, local: shape.M_p})
		}

		jd := box2d.MakeB2DistanceJointDef()
		jd.Initialize(anchorBody, body, anchorBody.GetPosition(), body.GetPosition())
		jd.Length = 0
		jd.FrequencyHz = cfg.FrequencyHz
		jd.DampingRatio = cfg.DampingRatio
		world.CreateJoint(&jd)

		dynamic = append(dynamic, body)
	}

	steps := s.run(&world, dynamic, cfg)
	logger.Debug("physics settled", "bodies", len(bodies), "fixtures", len(fixtures), "steps", steps)

	out := make([]Settled, len(fixtures))
	for i, f := range fixtures {
		p := f.body.GetWorldPoint(f.local)
		c := geom.V(p.X, p.Y)
		if !c.IsFinite() {
			return nil, errors.New(errors.ErrCodeNotConverged, "fixture %d left the finite plane", f.id)
		}
		out[i] = Settled{ID: f.id, Center: c}
	}
	return out, nil
}

// run steps the world and returns the number of steps taken.
func (s *Box2D) run(world *box2d.B2World, bodies []*box2d.B2Body, cfg Config) int {
	if cfg.SettleThreshold <= 0 {
		for i := 0; i < cfg.Steps; i++ {
			world.Step(cfg.TimeStep, cfg.VelocityIterations, cfg.PositionIterations)
		}
		return cfg.Steps
	}

	prev := positions(bodies)
	calm := 0
	for i := 0; i < cfg.Steps; i++ {
		world.Step(cfg.TimeStep, cfg.VelocityIterations, cfg.PositionIterations)
		cur := positions(bodies)
		moved := 0.0
		for j := range cur {
			moved = max(moved, cur[j].Distance(prev[j]))
		}
		prev = cur
		if moved < cfg.SettleThreshold {
			calm++
			if calm >= cfg.SettleSteps {
				return i + 1
			}
		} else {
			calm = 0
		}
	}
	return cfg.Steps
}

func positions(bodies []*box2d.B2Body) []geom.Vec2 {
	out := make([]geom.Vec2, len(bodies))
	for i, b := range bodies {
		p := b.GetPosition()
		out[i] = geom.V(p.X, p.Y)
	}
	return out
}
