// Package rackcfg defines the plain warehouse configuration object shared
// with the import/export and UI layers. Field names follow the external
// wire names; rule fields accept a scalar, an array of scalars, or null
// meaning wildcard.
package rackcfg

import (
	"encoding/json"
	"fmt"

	"rackview/internal/layout"
)

// FlexInts decodes a JSON field that is either a single integer, an array
// of integers, or null/absent. Nil means wildcard.
type FlexInts []int

// UnmarshalJSON implements the scalar-or-array-or-null convention.
// null must be handled before the scalar branch: unmarshaling null into
// an int is a no-op with a nil error, which would turn the wildcard into
// Exact(0).
func (f *FlexInts) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = nil
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err == nil {
		*f = FlexInts{single}
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err == nil {
		*f = FlexInts(many)
		return nil
	}
	return fmt.Errorf("rackcfg: field must be an integer, an integer array, or null, got %s", data)
}

// MarshalJSON emits a bare integer for single values.
func (f FlexInts) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	if len(f) == 1 {
		return json.Marshal(f[0])
	}
	return json.Marshal([]int(f))
}

// Selector converts the field to the internal tagged-variant form.
func (f FlexInts) Selector() layout.Selector {
	switch len(f) {
	case 0:
		return layout.Any()
	case 1:
		return layout.Exact(f[0])
	default:
		return layout.OneOf(f...)
	}
}

// RuleSpec is one exception rule over the rack grid. Absent fields are
// wildcards. Type is only meaningful for location-type rules.
type RuleSpec struct {
	Aisle    FlexInts `json:"aisle,omitempty"`
	Level    FlexInts `json:"level,omitempty"`
	Module   FlexInts `json:"module,omitempty"`
	Depth    FlexInts `json:"depth,omitempty"`
	Position FlexInts `json:"position,omitempty"`
	Type     string   `json:"type,omitempty"`
}

// Rule converts the external rule fields to the internal form.
func (r RuleSpec) Rule() layout.Rule {
	return layout.Rule{
		Aisle:    r.Aisle.Selector(),
		Level:    r.Level.Selector(),
		Module:   r.Module.Selector(),
		Depth:    r.Depth.Selector(),
		Position: r.Position.Selector(),
		Type:     r.Type,
	}
}

// Config is the declarative warehouse configuration consumed by the
// rendering-update engine.
type Config struct {
	Aisles             int        `json:"aisles"`
	ModulesPerAisle    int        `json:"modules_per_aisle"`
	LocationsPerModule int        `json:"locations_per_module"`
	StorageDepth       int        `json:"storage_depth"`
	LevelsPerAisle     []int      `json:"levels_per_aisle"`
	MissingLocations   []RuleSpec `json:"missing_locations,omitempty"`
	LocationTypes      []RuleSpec `json:"location_types,omitempty"`
}

// Shape returns the internal shape form.
func (c *Config) Shape() layout.Shape {
	return layout.Shape{
		Aisles:             c.Aisles,
		ModulesPerAisle:    c.ModulesPerAisle,
		LocationsPerModule: c.LocationsPerModule,
		StorageDepth:       c.StorageDepth,
		LevelsPerAisle:     c.LevelsPerAisle,
	}
}

// MissingRules returns the missing-location rules in list order.
func (c *Config) MissingRules() []layout.Rule {
	return toRules(c.MissingLocations)
}

// TypeRules returns the location-type rules in list order. First match
// wins during resolution.
func (c *Config) TypeRules() []layout.Rule {
	return toRules(c.LocationTypes)
}

func toRules(specs []RuleSpec) []layout.Rule {
	if len(specs) == 0 {
		return nil
	}
	rules := make([]layout.Rule, len(specs))
	for i, s := range specs {
		rules[i] = s.Rule()
	}
	return rules
}
