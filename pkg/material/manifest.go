package material

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Manifest lists the materials and sprite sheets to load into an atlas.
type Manifest struct {
	Materials []Spec        `yaml:"materials" json:"materials"`
	Sprites   []SpriteSheet `yaml:"sprites" json:"sprites"`
}

// SpriteSheet is a raster sliced into a grid of equally sized tiles.
type SpriteSheet struct {
	Name       string `yaml:"name" json:"name"`
	TileWidth  int    `yaml:"tile_width" json:"tile_width"`
	TileHeight int    `yaml:"tile_height" json:"tile_height"`
}

const manifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "materials": {
      "type": "array",
      "items": {
        "oneOf": [
          {"type": "null"},
          {"type": "string", "minLength": 1},
          {
            "type": "array",
            "items": {"type": "string"},
            "oneOf": [
              {"minItems": 1, "maxItems": 4},
              {"minItems": 6, "maxItems": 6}
            ]
          },
          {
            "type": "object",
            "additionalProperties": false,
            "required": ["top"],
            "properties": {
              "back": {"type": "string"},
              "front": {"type": "string"},
              "top": {"type": "string", "minLength": 1},
              "bottom": {"type": "string"},
              "left": {"type": "string"},
              "right": {"type": "string"}
            }
          }
        ]
      }
    },
    "sprites": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "tile_width": {"type": "integer", "minimum": 1},
          "tile_height": {"type": "integer", "minimum": 1}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func manifestValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("manifest.schema.json", manifestSchema)
	})
	return schema, schemaErr
}

// LoadManifest reads and validates a YAML (or JSON) manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest validates data against the manifest schema and decodes it.
// Sprite tile sizes default to 16, and a missing height to the width.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if doc == nil {
		return &Manifest{}, nil
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing manifest: %w", err)
	}
	var inst any
	if err := json.Unmarshal(raw, &inst); err != nil {
		return nil, fmt.Errorf("normalizing manifest: %w", err)
	}

	validator, err := manifestValidator()
	if err != nil {
		return nil, fmt.Errorf("compiling manifest schema: %w", err)
	}
	if err := validator.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	for i := range m.Sprites {
		sp := &m.Sprites[i]
		if sp.TileWidth == 0 {
			sp.TileWidth = 16
		}
		if sp.TileHeight == 0 {
			sp.TileHeight = sp.TileWidth
		}
	}
	return &m, nil
}
