package level

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/levelforge/internal/blueprint"
	"github.com/samdwyer/levelforge/internal/telemetry"
	"github.com/samdwyer/levelforge/internal/world"
)

const (
	defaultRenderStyle = "hand_drawn"
	defaultOverview    = "A dark and dangerous place."

	// Fallback level used when a blueprint id is unknown
	fallbackSize     = 40
	fallbackRoomEdge = 10
	fallbackRoomSize = 20
)

// Builder generates layouts and records them in a Store.
type Builder struct {
	store    Store
	registry *blueprint.Registry
	rng      *rand.Rand
	logger   logr.Logger
	tracer   trace.Tracer
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the builder's logger. It is also passed to the generator.
func WithLogger(logger logr.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithTracer overrides the tracer used for builder and generator spans.
func WithTracer(tracer trace.Tracer) BuilderOption {
	return func(b *Builder) {
		b.tracer = tracer
	}
}

// NewBuilder creates a builder. All levels it generates draw from rng, so a
// seeded rng reproduces a whole complex.
func NewBuilder(store Store, registry *blueprint.Registry, rng *rand.Rand, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:    store,
		registry: registry,
		rng:      rng,
		logger:   logr.Discard(),
		tracer:   telemetry.Tracer("level"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildComplex generates every level of the blueprint below the anchor and
// returns the id of the first level. A definition id builds a single level;
// an unknown id builds a plain fallback level.
//
// Each level gets a numbered marker per room and stairs up in its first
// room. Every level except the last gets stairs down in its last room, linked
// to the next level once that exists.
func (b *Builder) BuildComplex(ctx context.Context, anchor Anchor, blueprintID string) (uuid.UUID, error) {
	ctx, span := b.tracer.Start(ctx, "level.build_complex")
	defer span.End()
	span.SetAttributes(attribute.String("level.blueprint", blueprintID))

	plan, err := b.registry.Resolve(blueprintID)
	if errors.Is(err, blueprint.ErrUnknownBlueprint) {
		b.logger.Info("unknown blueprint, building fallback level", "blueprint", blueprintID)
		return b.buildFallback(ctx, anchor)
	}
	if err != nil {
		return uuid.Nil, err
	}

	// Levels whose definition is missing are skipped before anything is
	// stored, so the stairs chain only links levels that exist.
	var (
		refs []blueprint.LevelRef
		defs []*blueprint.Definition
	)
	for _, ref := range plan.Levels {
		def := b.registry.Definition(ref.BlueprintID)
		if def == nil {
			b.logger.Info("skipping level with unknown definition", "depth", ref.Depth, "blueprint", ref.BlueprintID)
			continue
		}
		refs = append(refs, ref)
		defs = append(defs, def)
	}
	if len(refs) == 0 {
		return uuid.Nil, fmt.Errorf("complex %s produced no levels", plan.ID)
	}

	var (
		firstLevelID uuid.UUID
		previousID   = anchor.MapID
		pendingDown  *Marker // Stairs down on the previous level, waiting for a target
	)
	for i, ref := range refs {
		d, err := world.Generate(ctx, defs[i].Generator.WorldConfig(), b.rng,
			world.WithLogger(b.logger.WithValues("depth", ref.Depth)),
			world.WithTracer(b.tracer))
		if err != nil {
			return uuid.Nil, fmt.Errorf("generating %s depth %d: %w", plan.ID, ref.Depth, err)
		}

		levelID, err := b.store.CreateLevel(ctx, Level{
			ParentID:       anchor.MarkerID,
			Kind:           KindDungeonLevel,
			Name:           levelName(ref),
			Depth:          ref.Depth,
			RenderStyle:    orString(ref.ThemeOverride, defaultRenderStyle),
			Overview:       orString(plan.Description, defaultOverview),
			SourceMarkerID: anchor.MarkerID,
			Geometry:       NewGeometry(d),
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("storing %s depth %d: %w", plan.ID, ref.Depth, err)
		}
		if firstLevelID == uuid.Nil {
			firstLevelID = levelID
		}

		if pendingDown != nil {
			pendingDown.PortalTo = levelID
			if err := b.store.UpdateMarker(ctx, *pendingDown); err != nil {
				return uuid.Nil, fmt.Errorf("linking stairs down: %w", err)
			}
			pendingDown = nil
		}

		if err := b.addRoomMarkers(ctx, levelID, d.Rooms); err != nil {
			return uuid.Nil, err
		}
		if len(d.Rooms) == 0 {
			b.logger.Info("level has no rooms, skipping stairs", "depth", ref.Depth)
			previousID = levelID
			continue
		}

		up := stairs(levelID, d.Rooms[0], SymbolStairsUp, "Stairs Up", "Stairs leading up...")
		up.PortalTo = previousID
		if _, err := b.store.CreateMarker(ctx, up); err != nil {
			return uuid.Nil, fmt.Errorf("storing stairs up: %w", err)
		}

		if i < len(refs)-1 {
			down := stairs(levelID, d.Rooms[len(d.Rooms)-1], SymbolStairsDown, "Stairs Down", "Leads deeper...")
			down.ID, err = b.store.CreateMarker(ctx, down)
			if err != nil {
				return uuid.Nil, fmt.Errorf("storing stairs down: %w", err)
			}
			pendingDown = &down
		}

		b.logger.V(1).Info("level built",
			"complex", plan.ID, "depth", ref.Depth, "rooms", len(d.Rooms),
			"fallbacks", d.Stats.Fallbacks, "fingerprint", strconv.FormatUint(d.Fingerprint(), 16))
		previousID = levelID
	}

	span.SetAttributes(attribute.Int("level.count", len(refs)))
	return firstLevelID, nil
}

// BuildInterior records a single-room building interior below the anchor.
func (b *Builder) BuildInterior(ctx context.Context, anchor Anchor, name string) (uuid.UUID, error) {
	d, err := world.BuildingInterior(world.DefaultInteriorSize, world.DefaultInteriorSize, world.DefaultInteriorInset)
	if err != nil {
		return uuid.Nil, err
	}

	levelID, err := b.store.CreateLevel(ctx, Level{
		ParentID:       anchor.MarkerID,
		Kind:           KindBuildingInterior,
		Name:           name,
		RenderStyle:    defaultRenderStyle,
		Overview:       "A level of " + name,
		SourceMarkerID: anchor.MarkerID,
		Geometry:       NewGeometry(d),
	})
	if err != nil {
		return uuid.Nil, err
	}
	if err := b.addRoomMarkers(ctx, levelID, d.Rooms); err != nil {
		return uuid.Nil, err
	}

	room := d.Rooms[0]
	door := Marker{
		ParentID: levelID,
		Name:     "Exit",
		Symbol:   SymbolDoor,
		X:        float64(d.Width / 2),
		Y:        float64(room.Y + room.Height),
		PortalTo: anchor.MapID,
	}
	if _, err := b.store.CreateMarker(ctx, door); err != nil {
		return uuid.Nil, fmt.Errorf("storing door: %w", err)
	}
	return levelID, nil
}

// buildFallback records a plain square level with one room and a way back up.
func (b *Builder) buildFallback(ctx context.Context, anchor Anchor) (uuid.UUID, error) {
	room := world.Room{X: fallbackRoomEdge, Y: fallbackRoomEdge, Width: fallbackRoomSize, Height: fallbackRoomSize}
	grid := world.NewGrid(fallbackSize, fallbackSize)
	grid.StampRoom(room)
	d := &world.Dungeon{Width: fallbackSize, Height: fallbackSize, Grid: grid, Rooms: []world.Room{room}, Stage: world.StageDone}

	levelID, err := b.store.CreateLevel(ctx, Level{
		ParentID:       anchor.MarkerID,
		Kind:           KindDungeonLevel,
		Name:           "A dark dungeon",
		Depth:          1,
		RenderStyle:    defaultRenderStyle,
		Overview:       defaultOverview,
		SourceMarkerID: anchor.MarkerID,
		Geometry:       NewGeometry(d),
	})
	if err != nil {
		return uuid.Nil, err
	}

	up := stairs(levelID, room, SymbolStairsUp, "Exit", "Stairs leading up...")
	up.PortalTo = anchor.MapID
	if _, err := b.store.CreateMarker(ctx, up); err != nil {
		return uuid.Nil, fmt.Errorf("storing stairs up: %w", err)
	}
	return levelID, nil
}

// addRoomMarkers creates one numbered marker per room at the room's center
// cell, numbered from 1. Descriptions start empty and are filled in by later
// editing.
func (b *Builder) addRoomMarkers(ctx context.Context, levelID uuid.UUID, rooms []world.Room) error {
	for _, r := range rooms {
		x, y := r.Center()
		m := Marker{
			ParentID: levelID,
			Name:     strconv.Itoa(r.ID + 1),
			Symbol:   SymbolRoomNumber,
			X:        float64(x),
			Y:        float64(y),
		}
		if _, err := b.store.CreateMarker(ctx, m); err != nil {
			return fmt.Errorf("storing room %d marker: %w", r.ID, err)
		}
	}
	return nil
}

func stairs(levelID uuid.UUID, room world.Room, symbol, name, description string) Marker {
	x, y := room.Center()
	return Marker{
		ParentID:    levelID,
		Name:        name,
		Symbol:      symbol,
		X:           float64(x),
		Y:           float64(y),
		Description: description,
	}
}

func levelName(ref blueprint.LevelRef) string {
	if ref.NameOverride != "" {
		return ref.NameOverride
	}
	return "Level " + strconv.Itoa(ref.Depth)
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
