package levels

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed *.json
var LevelsFS embed.FS

//go:embed schema/level.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/milk9111/climbing/levels/schema/level.schema.json"

type Level struct {
	Name     string   `json:"name"`
	Floor    float64  `json:"floor"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity places one prefab. Props override fields of the prefab's
// components, keyed by component name.
type Entity struct {
	Prefab   string                    `json:"prefab"`
	Location [3]float64                `json:"location"`
	Yaw      float64                   `json:"yaw,omitempty"`
	Pitch    float64                   `json:"pitch,omitempty"`
	Props    map[string]map[string]any `json:"props,omitempty"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func levelSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// LoadLevel reads name from the levels directory on disk, falling back to
// the embedded copy.
func LoadLevel(name string) (*Level, error) {
	data, err := os.ReadFile(filepath.Join("levels", name))
	if err != nil {
		data, err = LevelsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}
	}
	return ParseLevel(data)
}

// ParseLevel checks data against the level schema before decoding it.
func ParseLevel(data []byte) (*Level, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	s, err := levelSchema()
	if err != nil {
		return nil, fmt.Errorf("compile level schema: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate level: %w", err)
	}

	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}
