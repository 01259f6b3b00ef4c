package plan

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// RevisionCycle describes one follow-up pass over a studied topic: a named
// cycle scheduled OffsetDays after the original study date.
type RevisionCycle struct {
	Name       string      `json:"name"`
	OffsetDays int         `json:"offset_days"`
	Type       SessionType `json:"session_type"`
}

// RevisionConfig is the per-plan table of revision cycles, ordered by
// offset. The cycle labels are configuration, not fixed enum values.
type RevisionConfig struct {
	Cycles []RevisionCycle `json:"cycles"`
}

// DefaultRevisionConfig returns the stock revision table: a short-term
// reinforcement pass, a one-week consolidation and two spaced reviews.
func DefaultRevisionConfig() RevisionConfig {
	return RevisionConfig{Cycles: []RevisionCycle{
		{Name: "reinforcement", OffsetDays: 3, Type: TypeReinforcement},
		{Name: "consolidation", OffsetDays: 7, Type: TypeConsolidatedReview},
		{Name: "spaced", OffsetDays: 14, Type: TypeSpacedReview},
		{Name: "spaced-final", OffsetDays: 30, Type: TypeSpacedReview},
	}}
}

// Validate checks cycle names, offsets and session types.
func (c RevisionConfig) Validate() error {
	seen := make(map[string]bool, len(c.Cycles))
	prev := 0
	for i, cy := range c.Cycles {
		if cy.Name == "" {
			return fmt.Errorf("cycle %d: empty name", i)
		}
		if seen[cy.Name] {
			return fmt.Errorf("cycle %q: duplicate name", cy.Name)
		}
		seen[cy.Name] = true
		if cy.OffsetDays <= prev {
			return fmt.Errorf("cycle %q: offset %d must be greater than the previous cycle's", cy.Name, cy.OffsetDays)
		}
		prev = cy.OffsetDays
		if !ValidSessionType(cy.Type) || cy.Type == TypeNewTopic {
			return fmt.Errorf("cycle %q: invalid session type %q", cy.Name, cy.Type)
		}
	}
	return nil
}

// revisionConfigSchema constrains the JSON shape accepted for a plan's
// revision table.
const revisionConfigSchema = `{
	"type": "object",
	"required": ["cycles"],
	"additionalProperties": false,
	"properties": {
		"cycles": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "offset_days", "session_type"],
				"additionalProperties": false,
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"offset_days": {"type": "integer", "minimum": 1},
					"session_type": {
						"type": "string",
						"enum": ["consolidated_review", "spaced_review", "reinforcement"]
					}
				}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func revisionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(revisionConfigSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://revision-config.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// ParseRevisionConfig validates raw JSON against the embedded schema and
// decodes it, then applies the semantic checks from Validate.
func ParseRevisionConfig(raw []byte) (RevisionConfig, error) {
	schema, err := revisionSchema()
	if err != nil {
		return RevisionConfig{}, fmt.Errorf("compile revision schema: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return RevisionConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return RevisionConfig{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var cfg RevisionConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return RevisionConfig{}, fmt.Errorf("decode revision config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return RevisionConfig{}, err
	}
	return cfg, nil
}

// Value implements driver.Valuer, storing the config as JSON.
func (c RevisionConfig) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal revision config: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner. A NULL column falls back to the default
// revision table.
func (c *RevisionConfig) Scan(src any) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*c = DefaultRevisionConfig()
		return nil
	default:
		return fmt.Errorf("scan revision config: unsupported type %T", src)
	}
	return json.Unmarshal(b, c)
}
