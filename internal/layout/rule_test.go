package layout

import "testing"

func TestSelectorMatches(t *testing.T) {
	cases := []struct {
		name string
		sel  Selector
		val  int
		want bool
	}{
		{"any matches zero", Any(), 0, true},
		{"any matches large", Any(), 9999, true},
		{"exact hit", Exact(3), 3, true},
		{"exact miss", Exact(3), 4, false},
		{"oneof hit", OneOf(1, 5, 9), 5, true},
		{"oneof miss", OneOf(1, 5, 9), 2, false},
		{"empty oneof is wildcard", OneOf(), 7, true},
	}
	for _, c := range cases {
		if got := c.sel.Matches(c.val); got != c.want {
			t.Errorf("%s: Matches(%d) = %v, want %v", c.name, c.val, got, c.want)
		}
	}
}

func TestRuleMatchesAllFields(t *testing.T) {
	r := Rule{
		Aisle:    Exact(1),
		Level:    Any(),
		Module:   OneOf(0, 2),
		Depth:    Any(),
		Position: Exact(0),
	}
	if !r.Matches(Location{Aisle: 1, Level: 7, Module: 2, Depth: 1, Position: 0}) {
		t.Fatal("expected match")
	}
	if r.Matches(Location{Aisle: 1, Level: 7, Module: 1, Depth: 1, Position: 0}) {
		t.Fatal("module 1 should not match OneOf(0,2)")
	}
	if r.Matches(Location{Aisle: 0, Level: 7, Module: 2, Depth: 1, Position: 0}) {
		t.Fatal("aisle 0 should not match Exact(1)")
	}
}

func TestResolveTypeFirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Module: Exact(0), Type: "Pick"},
		{Module: Any(), Type: "Buffer"},
	}
	loc := Location{Module: 0}
	if got := ResolveType(loc, rules); got != "Pick" {
		t.Fatalf("ResolveType = %q, want Pick", got)
	}
	loc.Module = 1
	if got := ResolveType(loc, rules); got != "Buffer" {
		t.Fatalf("ResolveType = %q, want Buffer", got)
	}
}

func TestResolveTypeDefault(t *testing.T) {
	if got := ResolveType(Location{}, nil); got != DefaultType {
		t.Fatalf("ResolveType with no rules = %q, want %q", got, DefaultType)
	}
	// Rules with an empty type never assign.
	rules := []Rule{{Type: ""}}
	if got := ResolveType(Location{}, rules); got != DefaultType {
		t.Fatalf("ResolveType with empty-type rule = %q, want %q", got, DefaultType)
	}
}

func TestIsMissingAnyMatchSuppresses(t *testing.T) {
	rules := []Rule{
		{Aisle: Exact(2)},
		{Level: Exact(0), Position: Exact(1)},
	}
	if !IsMissing(Location{Aisle: 2, Level: 5}, rules) {
		t.Fatal("aisle 2 should be suppressed")
	}
	if !IsMissing(Location{Level: 0, Position: 1}, rules) {
		t.Fatal("level 0 position 1 should be suppressed")
	}
	if IsMissing(Location{Aisle: 1, Level: 1}, rules) {
		t.Fatal("unmatched slot should not be suppressed")
	}
}

func TestShapeLevelsOutOfRange(t *testing.T) {
	s := Shape{Aisles: 4, LevelsPerAisle: []int{3, 5}}
	if got := s.Levels(0); got != 3 {
		t.Fatalf("Levels(0) = %d, want 3", got)
	}
	// Aisles beyond the levels array are skipped, not an error.
	if got := s.Levels(2); got != 0 {
		t.Fatalf("Levels(2) = %d, want 0", got)
	}
	if got := s.Levels(-1); got != 0 {
		t.Fatalf("Levels(-1) = %d, want 0", got)
	}
}

func TestSlotCount(t *testing.T) {
	s := Shape{
		Aisles:             2,
		ModulesPerAisle:    2,
		LocationsPerModule: 3,
		StorageDepth:       2,
		LevelsPerAisle:     []int{2, 2},
	}
	// 2 aisles * 2 sides * 2 levels * 2 modules * 2 depth * 3 positions
	if got := s.SlotCount(); got != 96 {
		t.Fatalf("SlotCount = %d, want 96", got)
	}
}

func TestSlotCenterDepthMirrored(t *testing.T) {
	g := DefaultGeometry(2)
	loc0 := Location{Depth: 0}
	loc1 := Location{Depth: 1}

	// On both sides, a deeper slot must sit farther from the aisle
	// centerline (z = 0 for aisle 0).
	left0 := g.SlotCenter(loc0, SideLeft, 3)
	left1 := g.SlotCenter(loc1, SideLeft, 3)
	if !(left1[2] < left0[2] && left0[2] < 0) {
		t.Fatalf("left side depth not increasing away from aisle: d0 z=%f d1 z=%f", left0[2], left1[2])
	}

	right0 := g.SlotCenter(loc0, SideRight, 3)
	right1 := g.SlotCenter(loc1, SideRight, 3)
	if !(right1[2] > right0[2] && right0[2] > 0) {
		t.Fatalf("right side depth not increasing away from aisle: d0 z=%f d1 z=%f", right0[2], right1[2])
	}

	// Mirror symmetry about the centerline.
	if left0[2] != -right0[2] {
		t.Fatalf("sides not mirrored: left z=%f right z=%f", left0[2], right0[2])
	}
}
