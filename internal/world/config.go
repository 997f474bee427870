package world

import (
	"errors"
	"fmt"
)

const (
	// Default level dimensions
	DefaultWidth  = 60
	DefaultHeight = 40

	// Placement parameters
	DefaultMinRoomSize       = 4
	DefaultMaxRoomSize       = 10
	DefaultRoomCount         = 10
	DefaultPadding           = 3
	DefaultPlacementAttempts = 1000

	// Corridor cost model
	DefaultTurnPenalty      = 5
	DefaultAdjacencyPenalty = 15
	DefaultIterationCap     = 10000 // Lower bound for the scaled A* cap

	// floorCost is added for stepping onto an existing room floor.
	floorCost = 100
	// margin keeps rooms away from the grid border.
	margin = 2
	// iterationsPerCell scales the A* cap with the grid area.
	iterationsPerCell = 4
)

// ErrInvalidConfig is returned for configurations that cannot produce a layout.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config holds the generator parameters. All fields are required; use
// DefaultConfig as a starting point.
type Config struct {
	Width             int `json:"width"`
	Height            int `json:"height"`
	MinRoomSize       int `json:"min_room_size"` // Inclusive lower bound on room side length
	MaxRoomSize       int `json:"max_room_size"` // Inclusive upper bound on room side length
	RoomCount         int `json:"room_count"`    // Target number of rooms
	Padding           int `json:"padding"`       // Overlap-test inflation per side
	PlacementAttempts int `json:"placement_attempts"`
	TurnPenalty       int `json:"turn_penalty"`
	AdjacencyPenalty  int `json:"adjacency_penalty"`
	// IterationCap bounds popped A* nodes per corridor. Zero scales the cap
	// with the grid area.
	IterationCap int `json:"iteration_cap"`
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		MinRoomSize:       DefaultMinRoomSize,
		MaxRoomSize:       DefaultMaxRoomSize,
		RoomCount:         DefaultRoomCount,
		Padding:           DefaultPadding,
		PlacementAttempts: DefaultPlacementAttempts,
		TurnPenalty:       DefaultTurnPenalty,
		AdjacencyPenalty:  DefaultAdjacencyPenalty,
	}
}

// Validate rejects configurations that cannot produce a layout.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	case c.MinRoomSize < 1:
		return fmt.Errorf("%w: min room size %d must be at least 1", ErrInvalidConfig, c.MinRoomSize)
	case c.MinRoomSize > c.MaxRoomSize:
		return fmt.Errorf("%w: min room size %d exceeds max room size %d", ErrInvalidConfig, c.MinRoomSize, c.MaxRoomSize)
	case c.MaxRoomSize+2*margin > c.Width || c.MaxRoomSize+2*margin > c.Height:
		return fmt.Errorf("%w: max room size %d does not fit a %dx%d grid with a %d-cell margin",
			ErrInvalidConfig, c.MaxRoomSize, c.Width, c.Height, margin)
	case c.RoomCount < 0:
		return fmt.Errorf("%w: negative room count %d", ErrInvalidConfig, c.RoomCount)
	case c.Padding < 0:
		return fmt.Errorf("%w: negative padding %d", ErrInvalidConfig, c.Padding)
	case c.PlacementAttempts < 0:
		return fmt.Errorf("%w: negative placement attempts %d", ErrInvalidConfig, c.PlacementAttempts)
	case c.TurnPenalty < 0 || c.AdjacencyPenalty < 0:
		return fmt.Errorf("%w: penalties must not be negative", ErrInvalidConfig)
	case c.IterationCap < 0:
		return fmt.Errorf("%w: negative iteration cap %d", ErrInvalidConfig, c.IterationCap)
	}
	return nil
}

// EffectiveIterationCap returns the A* cap used for the configured grid.
func (c Config) EffectiveIterationCap() int {
	if c.IterationCap > 0 {
		return c.IterationCap
	}
	return max(DefaultIterationCap, iterationsPerCell*c.Width*c.Height)
}
