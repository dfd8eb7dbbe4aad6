package rackcfg

import (
	"encoding/json"
	"testing"

	"rackview/internal/layout"
)

func TestFlexIntsUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want FlexInts
	}{
		{`3`, FlexInts{3}},
		{`[1, 4, 7]`, FlexInts{1, 4, 7}},
		{`[]`, FlexInts{}},
		{`null`, nil},
	}
	for _, c := range cases {
		var f FlexInts
		if err := json.Unmarshal([]byte(c.in), &f); err != nil {
			t.Fatalf("unmarshal %q: %v", c.in, err)
		}
		if len(f) != len(c.want) {
			t.Fatalf("unmarshal %q = %v, want %v", c.in, f, c.want)
		}
		for i := range f {
			if f[i] != c.want[i] {
				t.Fatalf("unmarshal %q = %v, want %v", c.in, f, c.want)
			}
		}
	}

	var f FlexInts
	if err := json.Unmarshal([]byte(`"two"`), &f); err == nil {
		t.Fatal("expected an error for a string field")
	}
}

func TestNullRuleFieldIsWildcard(t *testing.T) {
	var spec RuleSpec
	if err := json.Unmarshal([]byte(`{"aisle": null, "level": 0, "type": "Pick"}`), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rule := spec.Rule()
	if !rule.Aisle.IsAny() {
		t.Fatalf("explicit null aisle must be a wildcard, got %v", spec.Aisle)
	}
	if !rule.Matches(layout.Location{Aisle: 5, Level: 0}) {
		t.Fatal("rule with null aisle must match any aisle")
	}
	if rule.Matches(layout.Location{Aisle: 0, Level: 1}) {
		t.Fatal("pinned level must still be enforced")
	}
}

func TestFlexIntsMarshalRoundTrip(t *testing.T) {
	cases := []struct {
		f    FlexInts
		want string
	}{
		{nil, `null`},
		{FlexInts{5}, `5`},
		{FlexInts{2, 6}, `[2,6]`},
	}
	for _, c := range cases {
		got, err := json.Marshal(c.f)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.f, err)
		}
		if string(got) != c.want {
			t.Fatalf("marshal %v = %s, want %s", c.f, got, c.want)
		}
	}
}

func TestFlexIntsSelector(t *testing.T) {
	if !FlexInts(nil).Selector().IsAny() {
		t.Fatal("nil field must become a wildcard selector")
	}
	s := FlexInts{2}.Selector()
	if !s.Matches(2) || s.Matches(3) {
		t.Fatal("single value must become an exact selector")
	}
	s = FlexInts{1, 3}.Selector()
	if !s.Matches(1) || !s.Matches(3) || s.Matches(2) {
		t.Fatal("multiple values must become a set selector")
	}
}

func TestConfigDecodeToInternalForm(t *testing.T) {
	raw := `{
		"aisles": 4,
		"modules_per_aisle": 12,
		"locations_per_module": 3,
		"storage_depth": 2,
		"levels_per_aisle": [6, 6, 8, 8],
		"missing_locations": [
			{"aisle": 0, "module": [2, 3]}
		],
		"location_types": [
			{"level": 0, "type": "Pick"},
			{"aisle": 3, "depth": 1, "type": "Buffer"}
		]
	}`
	var cfg Config
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}

	shape := cfg.Shape()
	if shape.Aisles != 4 || shape.ModulesPerAisle != 12 || shape.StorageDepth != 2 {
		t.Fatalf("unexpected shape: %+v", shape)
	}
	if got := shape.Levels(2); got != 8 {
		t.Fatalf("Levels(2) = %d, want 8", got)
	}

	missing := cfg.MissingRules()
	if len(missing) != 1 {
		t.Fatalf("missing rules = %d, want 1", len(missing))
	}
	hit := layout.Location{Aisle: 0, Level: 5, Module: 3, Depth: 1, Position: 2}
	if !missing[0].Matches(hit) {
		t.Fatalf("rule must match %+v", hit)
	}
	if missing[0].Matches(layout.Location{Aisle: 1, Module: 2}) {
		t.Fatal("rule must not match a different aisle")
	}

	types := cfg.TypeRules()
	if len(types) != 2 {
		t.Fatalf("type rules = %d, want 2", len(types))
	}
	// First match wins: level 0 in aisle 3 resolves to Pick, not Buffer.
	if typ := layout.ResolveType(layout.Location{Aisle: 3, Level: 0, Depth: 1}, types); typ != "Pick" {
		t.Fatalf("resolved type = %q, want Pick", typ)
	}
	if typ := layout.ResolveType(layout.Location{Aisle: 3, Level: 2, Depth: 1}, types); typ != "Buffer" {
		t.Fatalf("resolved type = %q, want Buffer", typ)
	}
	if typ := layout.ResolveType(layout.Location{Aisle: 1, Level: 2}, types); typ != layout.DefaultType {
		t.Fatalf("resolved type = %q, want default", typ)
	}
}
