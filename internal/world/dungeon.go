package world

import (
	"context"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/levelforge/internal/telemetry"
)

// Dungeon is a finished level layout: the grid and the rooms placed on it.
// It is owned by the caller once Generate returns.
type Dungeon struct {
	Width       int
	Height      int
	Grid        *Grid
	Rooms       []Room
	Connections []Edge
	Stats       Stats
	Stage       Stage // Last pipeline stage reached; StageDone once Generate returns
}

// Stats records what happened during a generation run.
type Stats struct {
	Attempts      int // Placement candidates drawn
	Rooms         int // Rooms placed
	TreeEdges     int // Spanning tree connections
	LoopEdges     int // Extra connections for loops
	Routed        int // Connections carved by the router
	Fallbacks     int // Connections carved by the L-shaped fallback
	CorridorCells int // Cells turned into corridor
}

// Option configures a generation run.
type Option func(*generator)

// WithLogger sets the logger used for stage transitions and fallbacks.
func WithLogger(logger logr.Logger) Option {
	return func(g *generator) {
		g.logger = logger
	}
}

// WithTracer overrides the tracer used for generation spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(g *generator) {
		g.tracer = tracer
	}
}

// WithMeter overrides the meter used for corridor counters.
func WithMeter(meter metric.Meter) Option {
	return func(g *generator) {
		g.meter = meter
	}
}

// generator runs the pipeline for a single layout.
type generator struct {
	cfg    Config
	rng    *rand.Rand
	logger logr.Logger
	tracer trace.Tracer
	meter  metric.Meter

	routedCounter   metric.Int64Counter
	fallbackCounter metric.Int64Counter
}

// Generate validates cfg and produces a layout: rooms are placed, connected
// by a spanning tree plus loop edges, and joined by carved corridors.
//
// Every random choice is drawn from rng, so the same config and seed yield
// the same layout. A nil rng is seeded from the clock.
func Generate(ctx context.Context, cfg Config, rng *rand.Rand, opts ...Option) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g := &generator{
		cfg:    cfg,
		rng:    rng,
		logger: logr.Discard(),
		tracer: telemetry.Tracer("world"),
		meter:  telemetry.Meter("world"),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.initCounters()

	return g.run(ctx), nil
}

func (g *generator) initCounters() {
	var err error
	g.routedCounter, err = g.meter.Int64Counter("levelforge.corridors.routed",
		metric.WithDescription("Connections carved by the A* router"),
		metric.WithUnit("{corridor}"))
	if err != nil {
		g.logger.Error(err, "creating routed counter")
		g.routedCounter = noop.Int64Counter{}
	}
	g.fallbackCounter, err = g.meter.Int64Counter("levelforge.corridors.fallback",
		metric.WithDescription("Connections carved by the L-shaped fallback after A* failed"),
		metric.WithUnit("{corridor}"))
	if err != nil {
		g.logger.Error(err, "creating fallback counter")
		g.fallbackCounter = noop.Int64Counter{}
	}
}

func (g *generator) run(ctx context.Context) *Dungeon {
	ctx, span := g.tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	d := &Dungeon{
		Width:  g.cfg.Width,
		Height: g.cfg.Height,
		Grid:   NewGrid(g.cfg.Width, g.cfg.Height),
	}
	g.setStage(ctx, d, StageEmpty)

	g.placeRooms(ctx, d)
	graph := g.buildGraph(ctx, d)
	g.routeCorridors(ctx, d, graph)
	g.setStage(ctx, d, StageDone)

	// Record telemetry
	span.SetAttributes(
		attribute.Int("dungeon.width", d.Width),
		attribute.Int("dungeon.height", d.Height),
		attribute.Int("dungeon.room_count", len(d.Rooms)),
		attribute.Int("dungeon.connections", len(d.Connections)),
		attribute.Int("dungeon.fallbacks", d.Stats.Fallbacks),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return d
}

func (g *generator) setStage(ctx context.Context, d *Dungeon, stage Stage) {
	d.Stage = stage
	trace.SpanFromContext(ctx).AddEvent("stage", trace.WithAttributes(
		attribute.String("dungeon.stage", stage.String()),
	))
	g.logger.V(1).Info("generation stage", "stage", stage.String())
}

func (g *generator) placeRooms(ctx context.Context, d *Dungeon) {
	_, span := g.tracer.Start(ctx, "dungeon.place_rooms")
	defer span.End()

	d.Rooms, d.Stats.Attempts = PlaceRooms(d.Grid, g.cfg, g.rng)
	d.Stats.Rooms = len(d.Rooms)
	if len(d.Rooms) < g.cfg.RoomCount {
		g.logger.Info("placement budget exhausted",
			"placed", len(d.Rooms), "requested", g.cfg.RoomCount, "attempts", d.Stats.Attempts)
	}

	span.SetAttributes(
		attribute.Int("dungeon.rooms_requested", g.cfg.RoomCount),
		attribute.Int("dungeon.rooms_placed", len(d.Rooms)),
		attribute.Int("dungeon.placement_attempts", d.Stats.Attempts),
	)
	g.setStage(ctx, d, StagePlaced)
}

func (g *generator) buildGraph(ctx context.Context, d *Dungeon) Graph {
	_, span := g.tracer.Start(ctx, "dungeon.build_graph")
	defer span.End()

	graph := Connect(d.Rooms, g.rng)
	d.Connections = graph.Edges
	d.Stats.TreeEdges = graph.TreeEdges
	d.Stats.LoopEdges = len(graph.Edges) - graph.TreeEdges

	span.SetAttributes(
		attribute.Int("dungeon.tree_edges", d.Stats.TreeEdges),
		attribute.Int("dungeon.loop_edges", d.Stats.LoopEdges),
	)
	g.setStage(ctx, d, StageGraphed)
	return graph
}

// routeCorridors carves every connection in order. Each corridor changes the
// costs seen by the next search, so edges are never routed concurrently.
func (g *generator) routeCorridors(ctx context.Context, d *Dungeon, graph Graph) {
	spanCtx, span := g.tracer.Start(ctx, "dungeon.route_corridors")
	defer span.End()

	router := NewRouter(d.Grid, g.cfg)
	for _, edge := range graph.Edges {
		from, to := d.Rooms[edge.A], d.Rooms[edge.B]
		if route, ok := router.FindPath(from, to); ok {
			d.Stats.CorridorCells += router.Carve(route)
			d.Stats.Routed++
			g.routedCounter.Add(spanCtx, 1)
			continue
		}

		d.Stats.CorridorCells += CarveL(d.Grid, from.CenterPoint(), to.CenterPoint(), g.rng)
		d.Stats.Fallbacks++
		g.fallbackCounter.Add(spanCtx, 1)
		g.logger.V(1).Info("corridor fell back to L-shape", "from", edge.A, "to", edge.B)
	}

	span.SetAttributes(
		attribute.Int("dungeon.routed", d.Stats.Routed),
		attribute.Int("dungeon.fallbacks", d.Stats.Fallbacks),
		attribute.Int("dungeon.iteration_cap", router.IterationCap),
	)
	g.setStage(ctx, d, StageRouted)
}

// IsPassable returns true if the given position can be walked on.
func (d *Dungeon) IsPassable(x, y int) bool {
	return d.Grid.At(x, y).IsPassable()
}

// RoomIndexAt returns the index of the room containing the position, or -1 if not in a room.
func (d *Dungeon) RoomIndexAt(x, y int) int {
	for i, room := range d.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Fingerprint hashes the grid and room list. Identical layouts have
// identical fingerprints.
func (d *Dungeon) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], d.Grid.Fingerprint())
	_, _ = h.Write(buf[:])
	for _, r := range d.Rooms {
		for _, v := range [...]int{r.ID, r.X, r.Y, r.Width, r.Height} {
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
