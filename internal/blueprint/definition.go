package blueprint

import "github.com/samdwyer/levelforge/internal/world"

// Generator defaults for fields a definition leaves unset.
const (
	defaultWidth             = 60
	defaultHeight            = 60
	defaultMinRoomSize       = 6
	defaultMaxRoomSize       = 12
	defaultRoomCount         = 15
	defaultPadding           = 1
	defaultPlacementAttempts = 100
)

// GeneratorConfig is the generator section of a definition. Zero fields
// fall back to the blueprint defaults.
type GeneratorConfig struct {
	Width             int  `json:"width,omitempty"`
	Height            int  `json:"height,omitempty"`
	MinRoomSize       int  `json:"min_room_size,omitempty"`
	MaxRoomSize       int  `json:"max_room_size,omitempty"`
	RoomCount         *int `json:"room_count,omitempty"` // Pointer so an explicit 0 survives
	Padding           *int `json:"padding,omitempty"`
	PlacementAttempts int  `json:"placement_attempts,omitempty"`
	TurnPenalty       int  `json:"turn_penalty,omitempty"`
	AdjacencyPenalty  int  `json:"adjacency_penalty,omitempty"`
	IterationCap      int  `json:"iteration_cap,omitempty"`
}

// WorldConfig converts the definition into a generator config.
func (g GeneratorConfig) WorldConfig() world.Config {
	cfg := world.DefaultConfig()
	cfg.Width = orDefault(g.Width, defaultWidth)
	cfg.Height = orDefault(g.Height, defaultHeight)
	cfg.MinRoomSize = orDefault(g.MinRoomSize, defaultMinRoomSize)
	cfg.MaxRoomSize = orDefault(g.MaxRoomSize, defaultMaxRoomSize)
	cfg.RoomCount = defaultRoomCount
	if g.RoomCount != nil {
		cfg.RoomCount = *g.RoomCount
	}
	cfg.Padding = defaultPadding
	if g.Padding != nil {
		cfg.Padding = *g.Padding
	}
	cfg.PlacementAttempts = orDefault(g.PlacementAttempts, defaultPlacementAttempts)
	cfg.TurnPenalty = orDefault(g.TurnPenalty, cfg.TurnPenalty)
	cfg.AdjacencyPenalty = orDefault(g.AdjacencyPenalty, cfg.AdjacencyPenalty)
	cfg.IterationCap = g.IterationCap
	return cfg
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Definition describes how to generate a single level.
type Definition struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Generator GeneratorConfig `json:"generator_config"`
}

// DefinitionsFile represents the structure of definitions.json.
type DefinitionsFile struct {
	Definitions []Definition `json:"definitions"`
}

// LevelRef places a definition at a depth within a complex.
type LevelRef struct {
	Depth         int    `json:"depth"`
	BlueprintID   string `json:"blueprint_id"`
	NameOverride  string `json:"name_override,omitempty"`
	ThemeOverride string `json:"theme_override,omitempty"`
}

// Complex is an ordered stack of levels entered from a single map marker.
type Complex struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Levels      []LevelRef `json:"levels"`
}

// ComplexesFile represents the structure of complexes.json.
type ComplexesFile struct {
	Complexes []Complex `json:"complexes"`
}

// LoadDefinitions loads level definitions from the embedded definitions.json file.
func LoadDefinitions() ([]Definition, error) {
	file, err := Load[DefinitionsFile]("definitions.json")
	if err != nil {
		return nil, err
	}
	return file.Definitions, nil
}

// LoadComplexes loads complexes from the embedded complexes.json file.
func LoadComplexes() ([]Complex, error) {
	file, err := Load[ComplexesFile]("complexes.json")
	if err != nil {
		return nil, err
	}
	return file.Complexes, nil
}
